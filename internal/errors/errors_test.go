package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Wrap(ErrInternalServer, cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if !errors.Is(err, ErrInternalServer) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if err.Message != ErrInternalServer.Message {
		t.Errorf("expected sentinel message, got %q", err.Message)
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "name is required")

	if err.Message != "name is required" {
		t.Errorf("expected custom message, got %q", err.Message)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.StatusCode)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel message must not be mutated")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected custom-message error to match its sentinel")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("did not expect a match against a different sentinel")
	}
}

func TestRender(t *testing.T) {
	t.Run("app_error", func(t *testing.T) {
		status, body, appErr := Render(fmt.Errorf("lookup: %w", ErrAccountNotFound))

		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
		if body.Detail != "Account not found" || body.Code != "ACCOUNT_NOT_FOUND" {
			t.Errorf("unexpected body %+v", body)
		}
		if appErr == nil {
			t.Error("expected AppError to be returned")
		}
	})

	t.Run("plain_error", func(t *testing.T) {
		status, body, appErr := Render(fmt.Errorf("pq: relation does not exist"))

		if status != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", status)
		}
		if body.Detail != ErrInternalServer.Message {
			t.Errorf("internal details leaked: %q", body.Detail)
		}
		if appErr != nil {
			t.Error("expected nil AppError for a plain error")
		}
	})
}
