package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorage, cause, "failed to load snapshot")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
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
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodePaneNotFound, "pane missing"),
			code: ErrCodePaneNotFound,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrCodePaneNotFound, "pane missing"),
			code: ErrCodeInternal,
			want: false,
		},
		{
			name: "wrapped structured error",
			err:  Wrap(ErrCodeStorage, New(ErrCodeTimeout, "slow"), "store failed"),
			code: ErrCodeStorage,
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			code: ErrCodeInternal,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: ErrCodeInternal,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidLayout, "bad")); got != ErrCodeInvalidLayout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidLayout)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRect, "pane %q is inverted", "a")
	if got := UserMessage(err); got != `pane "a" is inverted` {
		t.Errorf("UserMessage() = %v", got)
	}

	plain := errors.New("raw failure")
	if got := UserMessage(plain); got != "raw failure" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}
