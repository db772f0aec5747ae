package service

import (
	"bytes"
	"encoding/json"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"english_edu_backend/pkg/logger"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Static fallbacks: the platform never surfaces an AI failure to its users,
// callers always get usable text.
const (
	fallbackCourseDescription  = "Course description could not be generated right now, please write it manually."
	fallbackCertificateContent = "We appreciate your wonderful effort and wish you continued success."
	fallbackChatReply          = "Sorry, I'm having trouble reaching the assistant right now. Please try again later."
)

type AIService struct {
	mu     sync.RWMutex // guards config against hot-reload swaps
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Reconfigure swaps credentials on config hot reload. Requests already in
// flight keep the snapshot they started with.
func (s *AIService) Reconfigure(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete performs one chat-completions round trip.
func (s *AIService) complete(system string, history []AIChatMessage, prompt string) (string, error) {
	cfg := s.snapshot()

	messages := make([]AIChatMessage, 0, len(history)+2)
	messages = append(messages, AIChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// GenerateCourseDescription writes a course pitch for the given title.
// Degrades to the static fallback on any failure.
func (s *AIService) GenerateCourseDescription(courseTitle string) string {
	system := "You are an expert on the Egyptian secondary-school English curriculum."
	prompt := fmt.Sprintf(
		"Write an engaging, professional description for an English course titled %q "+
			"aimed at secondary-school students in Egypt. Mention why English matters and "+
			"how this course helps the student reach full marks. Keep it short.", courseTitle)

	text, err := s.complete(system, nil, prompt)
	if err != nil {
		logger.Log.Warn("AI course description failed", zap.Error(err))
		return fallbackCourseDescription
	}
	return text
}

// GenerateCertificateContent writes the body text for a student certificate.
func (s *AIService) GenerateCertificateContent(studentName, gradeLabel string, certType model.CertificateType) string {
	system := "You write short, formal, encouraging certificate texts for a distinguished English teacher's e-learning platform."
	prompt := fmt.Sprintf(
		"Write a brief, formal and touching certificate text for the student %q enrolled in %q. "+
			"Certificate type: %q. The text must be short enough to fit inside a certificate frame.",
		studentName, gradeLabel, certType)

	text, err := s.complete(system, nil, prompt)
	if err != nil {
		logger.Log.Warn("AI certificate content failed", zap.Error(err))
		return fallbackCertificateContent
	}
	return text
}

// Chat answers a student message with the running history for context.
func (s *AIService) Chat(message string, history []AIChatMessage) string {
	system := "You are the study assistant of an English-learning platform for Egyptian " +
		"secondary-school students. Help them understand English grammar, translate sentences " +
		"and give study advice in a positive, encouraging tone. Use simple language."

	text, err := s.complete(system, history, message)
	if err != nil {
		logger.Log.Warn("AI chat failed", zap.Error(err))
		return fallbackChatReply
	}
	return text
}
