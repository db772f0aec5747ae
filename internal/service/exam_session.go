package service

import (
	"english_edu_backend/internal/model"
	"sync"
	"sync/atomic"
	"time"
)

// ExamPhase is the lifecycle of one sitting of a timed exam.
type ExamPhase string

const (
	// ExamNotReady is terminal: the exam had no questions, the only thing
	// left to do is return to the platform with a (0,0) result.
	ExamNotReady   ExamPhase = "not_ready"
	ExamInProgress ExamPhase = "in_progress"
	ExamFinished   ExamPhase = "finished"
)

// fallbackDurationSeconds is used when an exam has no usable duration.
const fallbackDurationSeconds = 60

// ExamFinishFunc receives the single result emission of a session.
// autoSubmitted is true when the countdown, not the student, triggered it.
type ExamFinishFunc func(userID uint, exam *model.Exam, answers model.AnswerSheet, score, total int, autoSubmitted bool)

// ExamSession is the ephemeral state of one user sitting one exam. It is
// never persisted; only the final result is written back through onFinish.
type ExamSession struct {
	userID   uint
	exam     *model.Exam
	onFinish ExamFinishFunc

	mu        sync.Mutex
	phase     ExamPhase
	cursor    int
	answers   model.AnswerSheet
	remaining int
	score     int
	total     int

	// submitLatch is the one-shot guard shared by the countdown, manual
	// submit and abandonment: whichever fires first wins, the rest are
	// no-ops. Checked with compare-and-swap so a timer tick racing a
	// submit click can never grade twice.
	submitLatch int32
	stop        chan struct{}
}

func newExamSession(userID uint, exam *model.Exam, onFinish ExamFinishFunc) *ExamSession {
	s := &ExamSession{
		userID:   userID,
		exam:     exam,
		onFinish: onFinish,
		answers:  model.AnswerSheet{},
		stop:     make(chan struct{}),
	}

	if len(exam.Questions) == 0 {
		// 空试卷直接进入终态，不启动计时
		s.phase = ExamNotReady
		atomic.StoreInt32(&s.submitLatch, 1)
		close(s.stop)
		return s
	}

	s.phase = ExamInProgress
	s.remaining = exam.DurationMinutes * 60
	if exam.DurationMinutes <= 0 {
		s.remaining = fallbackDurationSeconds
	}
	return s
}

// run drives the countdown. It is deliberately independent of answer-state
// changes: selecting an answer never resets or restarts the ticker.
func (s *ExamSession) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.tick() {
				return
			}
		}
	}
}

// tick decrements the countdown by one second and forces submission when it
// reaches zero. Returns true once the session no longer needs the ticker.
func (s *ExamSession) tick() bool {
	s.mu.Lock()
	if s.phase != ExamInProgress {
		s.mu.Unlock()
		return true
	}
	s.remaining--
	expired := s.remaining <= 0
	s.mu.Unlock()

	if expired {
		s.finish(true)
		return true
	}
	return false
}

// finish is the single grading path shared by the timer and manual submit.
// The latch guarantees exactly one (score, total) emission.
func (s *ExamSession) finish(auto bool) (int, int, bool) {
	if !atomic.CompareAndSwapInt32(&s.submitLatch, 0, 1) {
		return 0, 0, false
	}

	s.mu.Lock()
	s.phase = ExamFinished
	if s.remaining < 0 {
		s.remaining = 0
	}
	sheet := make(model.AnswerSheet, len(s.answers))
	for k, v := range s.answers {
		sheet[k] = v
	}
	s.score, s.total = sheet.Grade(s.exam.Questions)
	score, total := s.score, s.total
	s.mu.Unlock()

	close(s.stop)

	if s.onFinish != nil {
		s.onFinish(s.userID, s.exam, sheet, score, total, auto)
	}
	return score, total, true
}

// SelectAnswer records or overwrites the answer for a question. It is a
// no-op once the session has finished, and never touches the countdown.
func (s *ExamSession) SelectAnswer(questionID string, answer model.AnswerOption) {
	if !answer.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != ExamInProgress {
		return
	}
	if !s.hasQuestion(questionID) {
		return
	}
	s.answers[questionID] = answer
}

func (s *ExamSession) hasQuestion(questionID string) bool {
	for _, q := range s.exam.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// Navigate moves the question cursor by delta, clamped to the question range.
// Returns the new cursor position.
func (s *ExamSession) Navigate(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != ExamInProgress {
		return s.cursor
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if max := len(s.exam.Questions) - 1; s.cursor > max {
		s.cursor = max
	}
	return s.cursor
}

// Submit is the manual finish path. The yes/no confirmation gate lives at
// the controller boundary; by the time this is called the student has
// confirmed. Returns ok=false when the timer (or an earlier submit) already
// finished the session.
func (s *ExamSession) Submit() (score, total int, ok bool) {
	return s.finish(false)
}

// Abandon discards the session without grading: the latch is claimed so no
// late timer tick can emit a result, and the ticker is stopped.
func (s *ExamSession) Abandon() bool {
	if !atomic.CompareAndSwapInt32(&s.submitLatch, 0, 1) {
		return false
	}
	s.mu.Lock()
	s.phase = ExamFinished
	s.mu.Unlock()
	close(s.stop)
	return true
}

func (s *ExamSession) Phase() ExamPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the emitted score tuple. For a NotReady session this is
// (0,0), matching the "return to the platform" action.
func (s *ExamSession) Result() (score, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, s.total
}

// ExamSessionView 考试会话的当前快照，供接口层返回
type ExamSessionView struct {
	ExamID        string            `json:"examId"`
	Title         string            `json:"title"`
	Phase         ExamPhase         `json:"phase"`
	Cursor        int               `json:"cursor"`
	QuestionCount int               `json:"questionCount"`
	RemainingSecs int               `json:"remainingSeconds"`
	Answers       model.AnswerSheet `json:"answers"`
	CurrentImage  string            `json:"currentImage,omitempty"`
	Score         int               `json:"score"`
	Total         int               `json:"total"`
}

func (s *ExamSession) View() ExamSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := ExamSessionView{
		ExamID:        s.exam.ID,
		Title:         s.exam.Title,
		Phase:         s.phase,
		Cursor:        s.cursor,
		QuestionCount: len(s.exam.Questions),
		RemainingSecs: s.remaining,
		Answers:       make(model.AnswerSheet, len(s.answers)),
		Score:         s.score,
		Total:         s.total,
	}
	for k, v := range s.answers {
		view.Answers[k] = v
	}
	if s.cursor < len(s.exam.Questions) {
		view.CurrentImage = s.exam.Questions[s.cursor].ImageURL
	}
	return view
}

// ExamSessionManager holds the live sessions, at most one per user.
type ExamSessionManager struct {
	mu       sync.Mutex
	sessions map[uint]*ExamSession
	interval time.Duration
}

func NewExamSessionManager() *ExamSessionManager {
	return &ExamSessionManager{
		sessions: make(map[uint]*ExamSession),
		interval: time.Second,
	}
}

// Start opens a session for the user, abandoning any session they left
// behind. An exam without questions yields a terminal NotReady session and
// no countdown.
func (m *ExamSessionManager) Start(userID uint, exam *model.Exam, onFinish ExamFinishFunc) *ExamSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[userID]; ok {
		old.Abandon()
	}

	s := newExamSession(userID, exam, onFinish)
	m.sessions[userID] = s
	if s.Phase() == ExamInProgress {
		go s.run(m.interval)
	}
	return s
}

// Get returns the user's live session, if any.
func (m *ExamSessionManager) Get(userID uint) (*ExamSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Remove drops the user's session from the registry.
func (m *ExamSessionManager) Remove(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
