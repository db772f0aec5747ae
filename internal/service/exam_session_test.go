package service

import (
	"sync"
	"testing"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExam(durationMinutes int, answers ...model.AnswerOption) *model.Exam {
	exam := &model.Exam{
		Title:           "Unit test exam",
		DurationMinutes: durationMinutes,
	}
	exam.ID = model.GenerateUUID()
	for i, ans := range answers {
		q := model.ExamQuestion{
			ExamID:        exam.ID,
			CorrectAnswer: ans,
			Position:      i,
		}
		q.ID = model.GenerateUUID()
		exam.Questions = append(exam.Questions, q)
	}
	return exam
}

type finishRecorder struct {
	mu    sync.Mutex
	calls []finishCall
}

type finishCall struct {
	score, total int
	auto         bool
}

func (r *finishRecorder) fn() ExamFinishFunc {
	return func(userID uint, exam *model.Exam, answers model.AnswerSheet, score, total int, auto bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, finishCall{score: score, total: total, auto: auto})
	}
}

func (r *finishRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestExamSessionEmptyExam(t *testing.T) {
	rec := &finishRecorder{}
	s := newExamSession(1, makeExam(10), rec.fn())

	assert.Equal(t, ExamNotReady, s.Phase())
	score, total := s.Result()
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)

	// terminal: nothing can move it, nothing is emitted
	_, _, ok := s.Submit()
	assert.False(t, ok)
	assert.False(t, s.Abandon())
	assert.Equal(t, ExamNotReady, s.Phase())
	assert.Equal(t, 0, rec.count())
}

func TestExamSessionCountdownSetup(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		wantSecs int
	}{
		{"regular duration", 10, 600},
		{"zero falls back", 0, fallbackDurationSeconds},
		{"negative falls back", -5, fallbackDurationSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newExamSession(1, makeExam(tt.minutes, model.AnswerA), nil)
			assert.Equal(t, ExamInProgress, s.Phase())
			assert.Equal(t, tt.wantSecs, s.View().RemainingSecs)
		})
	}
}

func TestExamSessionGrading(t *testing.T) {
	exam := makeExam(10, model.AnswerA, model.AnswerB, model.AnswerC)
	rec := &finishRecorder{}
	s := newExamSession(7, exam, rec.fn())

	// one right, one wrong, one unanswered
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)
	s.SelectAnswer(exam.Questions[1].ID, model.AnswerD)

	score, total, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, 1, score)
	assert.Equal(t, 3, total)
	assert.Equal(t, ExamFinished, s.Phase())

	require.Equal(t, 1, rec.count())
	assert.False(t, rec.calls[0].auto)
}

func TestExamSessionAnswerOverwrite(t *testing.T) {
	exam := makeExam(10, model.AnswerB)
	s := newExamSession(1, exam, nil)

	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerB)

	score, _, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, 1, score)
}

func TestExamSessionIgnoresBadInput(t *testing.T) {
	exam := makeExam(10, model.AnswerA)
	s := newExamSession(1, exam, nil)

	s.SelectAnswer("no-such-question", model.AnswerA)
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerOption("E"))

	assert.Empty(t, s.View().Answers)
}

func TestExamSessionAnswerDoesNotTouchCountdown(t *testing.T) {
	exam := makeExam(10, model.AnswerA)
	s := newExamSession(1, exam, nil)

	s.tick()
	s.tick()
	before := s.View().RemainingSecs
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)
	assert.Equal(t, before, s.View().RemainingSecs)
}

func TestExamSessionNavigateClamps(t *testing.T) {
	exam := makeExam(10, model.AnswerA, model.AnswerB, model.AnswerC)
	s := newExamSession(1, exam, nil)

	assert.Equal(t, 0, s.Navigate(-1))
	assert.Equal(t, 1, s.Navigate(1))
	assert.Equal(t, 2, s.Navigate(1))
	assert.Equal(t, 2, s.Navigate(1))
	assert.Equal(t, 1, s.Navigate(-1))
}

func TestExamSessionTimerExpiryAutoSubmits(t *testing.T) {
	exam := makeExam(0, model.AnswerA, model.AnswerB) // fallback 60s
	rec := &finishRecorder{}
	s := newExamSession(1, exam, rec.fn())
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)

	done := false
	for i := 0; i < fallbackDurationSeconds; i++ {
		done = s.tick()
	}
	require.True(t, done)
	assert.Equal(t, ExamFinished, s.Phase())
	assert.Equal(t, 0, s.View().RemainingSecs)

	require.Equal(t, 1, rec.count())
	assert.True(t, rec.calls[0].auto)
	assert.Equal(t, 1, rec.calls[0].score)
	assert.Equal(t, 2, rec.calls[0].total)

	// a late manual submit after expiry changes nothing
	_, _, ok := s.Submit()
	assert.False(t, ok)
	assert.Equal(t, 1, rec.count())
}

func TestExamSessionFinishRaceEmitsOnce(t *testing.T) {
	exam := makeExam(10, model.AnswerA)
	rec := &finishRecorder{}
	s := newExamSession(1, exam, rec.fn())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		auto := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.finish(auto)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, rec.count())
}

func TestExamSessionAbandonSkipsGrading(t *testing.T) {
	exam := makeExam(10, model.AnswerA)
	rec := &finishRecorder{}
	s := newExamSession(1, exam, rec.fn())
	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)

	require.True(t, s.Abandon())
	assert.Equal(t, ExamFinished, s.Phase())
	assert.Equal(t, 0, rec.count())

	// latch is gone, no late grading path remains
	_, _, ok := s.Submit()
	assert.False(t, ok)
	assert.True(t, s.tick()) // ticker sees a finished session and exits
	assert.Equal(t, 0, rec.count())
}

func TestExamSessionNoChangesAfterFinish(t *testing.T) {
	exam := makeExam(10, model.AnswerA, model.AnswerB)
	s := newExamSession(1, exam, nil)
	_, _, ok := s.Submit()
	require.True(t, ok)

	s.SelectAnswer(exam.Questions[0].ID, model.AnswerA)
	assert.Empty(t, s.View().Answers)
	assert.Equal(t, 0, s.Navigate(1))
}

func TestExamSessionManagerReplacesSession(t *testing.T) {
	m := NewExamSessionManager()
	rec := &finishRecorder{}

	first := m.Start(42, makeExam(10, model.AnswerA), rec.fn())
	second := m.Start(42, makeExam(10, model.AnswerB), rec.fn())

	// the first session was abandoned silently
	assert.Equal(t, ExamFinished, first.Phase())
	assert.Equal(t, 0, rec.count())

	got, ok := m.Get(42)
	require.True(t, ok)
	assert.Same(t, second, got)

	m.Remove(42)
	_, ok = m.Get(42)
	assert.False(t, ok)
}

func TestExamSessionManagerNotReadyHasNoTicker(t *testing.T) {
	m := NewExamSessionManager()
	s := m.Start(1, makeExam(10), nil)
	assert.Equal(t, ExamNotReady, s.Phase())
	// stop channel is already closed for terminal sessions
	select {
	case <-s.stop:
	default:
		t.Fatal("expected stop channel to be closed")
	}
}
