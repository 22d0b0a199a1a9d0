package store

import (
	"fmt"
	"testing"
	"time"

	"chatbox-backend/internal/models"
)

func seedStore(t *testing.T, n int) *MemoryStore {
	t.Helper()

	s := NewMemoryStore()
	for i := 0; i < n; i++ {
		s.Append(models.Message{
			ID:        fmt.Sprintf("msg-%d", i),
			Text:      fmt.Sprintf("message %d", i),
			Sender:    "User_1",
			Timestamp: time.Now().UTC(),
		})
	}
	return s
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	s := seedStore(t, 5)

	all := s.All()
	if len(all) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(all))
	}
	for i, msg := range all {
		if msg.ID != fmt.Sprintf("msg-%d", i) {
			t.Errorf("Position %d: expected id %q, got %q", i, fmt.Sprintf("msg-%d", i), msg.ID)
		}
	}
}

func TestAll_EmptyStoreReturnsEmptySlice(t *testing.T) {
	s := NewMemoryStore()

	all := s.All()
	if all == nil {
		t.Fatal("Expected non-nil slice from empty store")
	}
	if len(all) != 0 {
		t.Errorf("Expected 0 messages, got %d", len(all))
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := seedStore(t, 3)

	all := s.All()
	all[0].Text = "mutated"

	if s.All()[0].Text == "mutated" {
		t.Error("Mutating the returned slice must not affect the store")
	}
}

func TestTail(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		n         int
		expectLen int
		firstID   string
	}{
		{"fewer than n returns all", 4, 10, 4, "msg-0"},
		{"exactly n returns all", 10, 10, 10, "msg-0"},
		{"more than n returns last n", 13, 10, 10, "msg-3"},
		{"zero n returns empty", 5, 0, 0, ""},
		{"empty store", 0, 10, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore(t, tc.stored)

			tail := s.Tail(tc.n)
			if len(tail) != tc.expectLen {
				t.Fatalf("Expected %d messages, got %d", tc.expectLen, len(tail))
			}
			if tc.expectLen == 0 {
				return
			}
			if tail[0].ID != tc.firstID {
				t.Errorf("Expected first id %q, got %q", tc.firstID, tail[0].ID)
			}
			lastID := fmt.Sprintf("msg-%d", tc.stored-1)
			if tail[len(tail)-1].ID != lastID {
				t.Errorf("Expected last id %q, got %q", lastID, tail[len(tail)-1].ID)
			}
		})
	}
}

func TestLen(t *testing.T) {
	s := seedStore(t, 7)

	if s.Len() != 7 {
		t.Errorf("Expected length 7, got %d", s.Len())
	}
}
