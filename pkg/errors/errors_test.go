package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "entity %q rejected", "main")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != `entity "main" rejected` {
		t.Errorf("Message = %v, want %v", err.Message, `entity "main" rejected`)
	}

	expected := `INVALID_INPUT: entity "main" rejected`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStoreBackend, cause, "saving layout")

	if err.Code != ErrCodeStoreBackend {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreBackend)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidGraph, "test"),
			code:     ErrCodeInvalidGraph,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidGraph, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeCacheBackend, New(ErrCodeTimeout, "inner"), "outer"),
			code:     ErrCodeCacheBackend,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeLayoutNotFound, "missing")); got != ErrCodeLayoutNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeLayoutNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidStrategy, "bad algorithm")); got != "bad algorithm" {
		t.Errorf("UserMessage() = %v, want %v", got, "bad algorithm")
	}
	if got := UserMessage(errors.New("plain message")); got != "plain message" {
		t.Errorf("UserMessage(plain) = %v, want %v", got, "plain message")
	}
}
