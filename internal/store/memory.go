package store

import (
	"sync"

	"chatbox-backend/internal/models"
)

// MemoryStore is the append-only conversation log. Records are never updated
// or deleted, and the log lives only as long as the process.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make([]models.Message, 0),
	}
}

// Append adds a record to the end of the log.
func (s *MemoryStore) Append(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}

// All returns a copy of the full log in insertion order. The result is never
// nil so it always encodes as a JSON array.
func (s *MemoryStore) All() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Tail returns a copy of the last n records in insertion order, or all of
// them when fewer than n exist.
func (s *MemoryStore) Tail(n int) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.messages) {
		n = len(s.messages)
	}
	if n <= 0 {
		return []models.Message{}
	}

	out := make([]models.Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// Len reports the number of records in the log.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}
