package services

import (
	"context"
	"errors"
	"fmt"
)

// Custom errors

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// BackendError wraps a failed model invocation. The user message has already
// been committed when this is returned; callers must not retry the append.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *BackendError) Unwrap() error { return e.Err }

// Timeout reports whether the backend call exceeded its deadline.
func (e *BackendError) Timeout() bool { return errors.Is(e.Err, context.DeadlineExceeded) }
