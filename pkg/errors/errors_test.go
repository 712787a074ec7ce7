package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidLock, "unknown person: %s", "DOE, JOHN")

	if err.Code != ErrCodeInvalidLock {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLock)
	}

	expected := "INVALID_LOCK: unknown person: DOE, JOHN"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("file is not a workbook")
	err := Wrap(ErrCodeInvalidRoster, cause, "read %s", "asm.xlsx")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_ROSTER: read asm.xlsx: file is not a workbook"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeVersionMismatch, "v"), ErrCodeVersionMismatch, true},
		{"non-matching code", New(ErrCodeInvalidInput, "x"), ErrCodeInvalidLock, false},
		{"outer code wins", Wrap(ErrCodeDataConsistency, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeDataConsistency, true},
		{"fmt wrapped", fmt.Errorf("solve: %w", New(ErrCodeInvalidLock, "lock")), ErrCodeInvalidLock, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("import: %w", New(ErrCodeVersionMismatch, "saved with 0.9.0"))
	if got := GetCode(err); got != ErrCodeVersionMismatch {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeVersionMismatch)
	}
	if got := UserMessage(err); got != "saved with 0.9.0" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidLock, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidRoster, "x"), http.StatusBadRequest},
		{New(ErrCodeWorkspaceNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeVersionMismatch, "x"), http.StatusConflict},
		{New(ErrCodeDataConsistency, "x"), http.StatusConflict},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
