package reposearcher

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the user backed out of an operation.
	// This is a normal flow control error, not a failure.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrUsernameMismatch indicates the token authenticated a different account
	// than the one typed into the login form.
	ErrUsernameMismatch = errors.New("token does not belong to this user")
)

// FetchError is a recoverable data-fetch failure: the network was down, the
// service refused the request, or the response could not be decoded.
//
// Message is what the user should read. Screens surface it on their alert
// output and keep running.
type FetchError struct {
	Op      string // Operation that failed (e.g., "search", "login")
	Message string // Human-readable, localized description
	Err     error  // Underlying error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reposearcher: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("reposearcher: %s: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error.
func NewFetchError(op, message string, err error) *FetchError {
	return &FetchError{Op: op, Message: message, Err: err}
}

// IsFetchError checks if an error is a fetch error.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsCancelled checks if an error indicates user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// UserMessage returns the text to show for err: the Message of a wrapped
// FetchError when there is one, otherwise err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.Message != "" {
		return fetchErr.Message
	}
	return err.Error()
}
