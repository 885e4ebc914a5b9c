package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrAPIKeyMissing is returned at construction when no credential is set
	ErrAPIKeyMissing = errors.New("gemini API key not configured")

	// ErrQuotaExceeded maps the provider's HTTP 429; callers may retry later
	ErrQuotaExceeded = errors.New("analysis quota exceeded")

	// ErrEmptyResponse is returned when the model produced no usable text
	ErrEmptyResponse = errors.New("empty response from model")
)

// BlockedError is returned when generation was withheld by the provider's
// safety or content policy
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("analysis blocked by provider: %s", e.Reason)
}

// MalformedResponseError is returned when the model payload is not valid
// JSON. Raw keeps the offending text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
