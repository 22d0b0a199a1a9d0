package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatbox-backend/internal/models"
	"chatbox-backend/internal/store"
)

// systemPrompt is always the first unit sent to the model, regardless of how
// much history exists.
const systemPrompt = "You are a helpful AI assistant in a chat application."

// ModelBackend is the capability the coordinator needs from an LLM provider:
// given ordered role-tagged units, produce a reply string or fail.
type ModelBackend interface {
	Invoke(ctx context.Context, units []models.PromptUnit) (string, error)
}

// Notifier receives every record appended to the conversation.
type Notifier interface {
	BroadcastMessage(msg models.Message)
}

// ChatService coordinates a message exchange: it validates the incoming
// message, appends it, windows the history into model context, invokes the
// backend, and appends the reply.
type ChatService struct {
	store      *store.MemoryStore
	backend    ModelBackend
	notifier   Notifier
	windowSize int
	timeout    time.Duration

	// Serializes whole exchanges so each model call sees a window made of
	// fully completed prior exchanges. Reads do not take this lock.
	submitMu sync.Mutex
}

func NewChatService(st *store.MemoryStore, backend ModelBackend, notifier Notifier, windowSize int, timeout time.Duration) *ChatService {
	if windowSize <= 0 {
		windowSize = 10
	}
	return &ChatService{
		store:      st,
		backend:    backend,
		notifier:   notifier,
		windowSize: windowSize,
		timeout:    timeout,
	}
}

// Submit runs one exchange and returns the stored user record and the stored
// reply record. On backend failure the user record stays in the log and a
// *BackendError is returned; there is no rollback and no retry.
func (s *ChatService) Submit(ctx context.Context, text, sender string) (models.Message, models.Message, error) {
	fields := map[string]string{}
	if strings.TrimSpace(text) == "" {
		fields["text"] = "required"
	}
	if strings.TrimSpace(sender) == "" {
		fields["sender"] = "required"
	}
	if len(fields) > 0 {
		return models.Message{}, models.Message{}, &ValidationError{Fields: fields}
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	s.store.Append(userMsg)
	s.publish(userMsg)

	units := s.buildPrompt(s.store.Tail(s.windowSize))

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.backend.Invoke(callCtx, units)
	if err != nil {
		return models.Message{}, models.Message{}, &BackendError{Op: "model invoke", Err: err}
	}

	aiMsg := models.Message{
		ID:        uuid.NewString(),
		Text:      reply,
		Sender:    models.SenderAI,
		Timestamp: time.Now().UTC(),
	}
	s.store.Append(aiMsg)
	s.publish(aiMsg)

	return userMsg, aiMsg, nil
}

// List returns the full conversation in order, with no side effects.
func (s *ChatService) List(ctx context.Context) []models.Message {
	return s.store.All()
}

// buildPrompt maps the history window onto role-tagged units with the fixed
// system unit at position 0. Every sender other than "AI" collapses to the
// user role; the backend never sees individual human identities.
func (s *ChatService) buildPrompt(window []models.Message) []models.PromptUnit {
	units := make([]models.PromptUnit, 0, len(window)+1)
	units = append(units, models.PromptUnit{Role: models.RoleSystem, Text: systemPrompt})

	for _, msg := range window {
		role := models.RoleUser
		if msg.Sender == models.SenderAI {
			role = models.RoleAssistant
		}
		units = append(units, models.PromptUnit{Role: role, Text: msg.Text})
	}
	return units
}

func (s *ChatService) publish(msg models.Message) {
	if s.notifier != nil {
		s.notifier.BroadcastMessage(msg)
	}
}
