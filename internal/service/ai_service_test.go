package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"english_edu_backend/internal/config"
	"english_edu_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newAIServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: reply}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAIServiceChat(t *testing.T) {
	srv := newAIServer(t, "Present perfect links past actions to the present.")
	defer srv.Close()

	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})
	reply := ai.Chat("Explain the present perfect", nil)
	assert.Equal(t, "Present perfect links past actions to the present.", reply)
}

func TestAIServiceFallsBackWhenUnreachable(t *testing.T) {
	ai := NewAIService(config.AIConfig{BaseURL: "http://127.0.0.1:1", APIKey: "x", Model: "test"})

	assert.Equal(t, fallbackChatReply, ai.Chat("hello", nil))
	assert.Equal(t, fallbackCourseDescription, ai.GenerateCourseDescription("Grammar Basics"))
	assert.Equal(t, fallbackCertificateContent, ai.GenerateCertificateContent("Sara", "Second Secondary", "excellence"))
}

func TestAIServiceFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "x", Model: "test"})
	assert.Equal(t, fallbackChatReply, ai.Chat("hello", nil))
}

func TestAIServiceReconfigureConcurrent(t *testing.T) {
	srv := newAIServer(t, "ok")
	defer srv.Close()

	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				ai.Reconfigure(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.Equal(t, "ok", ai.Chat("hi", nil))
			}
		}()
	}
	wg.Wait()
}

func TestAIServiceReconfigure(t *testing.T) {
	srv := newAIServer(t, "ok")
	defer srv.Close()

	ai := NewAIService(config.AIConfig{BaseURL: "http://127.0.0.1:1", APIKey: "old", Model: "test"})
	assert.Equal(t, fallbackChatReply, ai.Chat("hi", nil))

	ai.Reconfigure(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test"})
	assert.Equal(t, "ok", ai.Chat("hi", nil))
}
