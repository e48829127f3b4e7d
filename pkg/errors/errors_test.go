package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAspect, "invalid aspect provided: %q", "ignis")

	if err.Code != ErrCodeInvalidAspect {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAspect)
	}

	if err.Message != `invalid aspect provided: "ignis"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_ASPECT: invalid aspect provided: "ignis"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if err.Error() != "NETWORK_ERROR: failed to fetch: connection refused" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidAspect, "x"), ErrCodeInvalidAspect, true},
		{"different code", New(ErrCodeInvalidAspect, "x"), ErrCodeNotFound, false},
		{"wrapped with fmt", fmt.Errorf("solve: %w", New(ErrCodeInvalidDistance, "x")), ErrCodeInvalidDistance, true},
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
	err := fmt.Errorf("outer: %w", New(ErrCodeSessionNotFound, "session %s not found", "abc"))
	if got := GetCode(err); got != ErrCodeSessionNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeSessionNotFound)
	}
	if got := UserMessage(err); got != "session abc not found" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsInvalidInput(t *testing.T) {
	if !IsInvalidInput(New(ErrCodeInvalidAspect, "x")) {
		t.Error("INVALID_ASPECT should be invalid input")
	}
	if !IsInvalidInput(New(ErrCodeInvalidDistance, "x")) {
		t.Error("INVALID_DISTANCE should be invalid input")
	}
	if IsInvalidInput(New(ErrCodeNetwork, "x")) {
		t.Error("NETWORK_ERROR should not be invalid input")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidAspect, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidDistance, "x"), http.StatusBadRequest},
		{New(ErrCodeSessionNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{New(ErrCodeNetwork, "x"), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
