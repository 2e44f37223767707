package reposearcher

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("reload: %w", NewFetchError("search", "network down", cause))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"fetch error", NewFetchError("search", "network down", cause), "network down"},
		{"wrapped fetch error", wrapped, "network down"},
		{"fetch error without message", NewFetchError("search", "", cause), "reposearcher: search: dial tcp: connection refused"},
		{"plain error", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("outer: %w", NewFetchError("login", "took too long", cause))

	if !IsFetchError(err) {
		t.Fatal("IsFetchError() = false")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach the cause")
	}
	if IsFetchError(cause) {
		t.Error("plain error reported as fetch error")
	}
	if !IsCancelled(fmt.Errorf("back: %w", ErrCancelled)) {
		t.Error("IsCancelled() = false for wrapped ErrCancelled")
	}
}
