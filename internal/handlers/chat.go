package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"chatbox-backend/internal/models"
	"chatbox-backend/internal/services"
)

type chatService interface {
	Submit(ctx context.Context, text, sender string) (models.Message, models.Message, error)
	List(ctx context.Context) []models.Message
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ListMessages returns the full conversation in store order.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.chat.List(r.Context()))
}

// PostMessage submits a user message and returns the stored user record
// together with the model reply.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userMsg, aiMsg, err := h.chat.Submit(r.Context(), req.Text, req.Sender)
	if err != nil {
		handleChatError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, []models.Message{userMsg, aiMsg})
}

// MethodNotAllowed is wired as the router's fallback for unsupported verbs.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

func handleChatError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case *services.BackendError:
		log.Printf("Model backend failure (timeout=%v): %v", e.Timeout(), e)
		writeError(w, http.StatusInternalServerError, "Failed to process message with AI backend")
	default:
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
