package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"chatbox-backend/internal/models"
)

// GeminiService implements ModelBackend over the Gemini API.
type GeminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	rateChan    chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName string, temperature float32, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if concurrentReqs <= 0 {
		concurrentReqs = 1
	}

	// Token bucket for limiting concurrent API calls
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
		rateChan:    rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Invoke sends the ordered prompt units to Gemini and returns the reply text.
// The last unit must be the just-submitted user message; earlier user and
// assistant units become chat history and the system unit becomes the model's
// system instruction.
func (s *GeminiService) Invoke(ctx context.Context, units []models.PromptUnit) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	if len(units) == 0 {
		return "", fmt.Errorf("empty prompt")
	}

	last := units[len(units)-1]
	if last.Role != models.RoleUser {
		return "", fmt.Errorf("prompt must end with a user unit, got %q", last.Role)
	}

	// A fresh GenerativeModel per call: SystemInstruction is per-model state
	// and the shared instance must not be mutated concurrently.
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)

	var history []*genai.Content
	for _, unit := range units[:len(units)-1] {
		switch unit.Role {
		case models.RoleSystem:
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(unit.Text)},
			}
		case models.RoleAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(unit.Text)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(unit.Text)},
			})
		}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty reply")
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
