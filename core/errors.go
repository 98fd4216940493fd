package core

import (
	"errors"
	"fmt"
)

// ProviderError represents an error returned by the Runware API with full context.
type ProviderError struct {
	Provider  string
	Status    int
	RequestID string
	Code      string
	Parameter string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s (status=%d, code=%s", e.Provider, e.Message, e.Status, e.Code)
	if e.Parameter != "" {
		msg += ", parameter=" + e.Parameter
	}
	if e.RequestID != "" {
		msg += ", task_uuid=" + e.RequestID
	}
	return msg + ")"
}

// Unwrap returns the underlying error for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
)

// ErrInvalidInput is wrapped by builder validation failures raised before any
// request is sent.
var ErrInvalidInput = errors.New("invalid input")
