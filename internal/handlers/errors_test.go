package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bytebabies/internal/docstore"
	"bytebabies/internal/service"
	"bytebabies/internal/session"
	"bytebabies/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != `{"error":"Teapot"}` {
		t.Fatalf("expected JSON error body, got %q", body)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestRespondWithFacadeErrorStatus(t *testing.T) {
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&bytes.Buffer{})
	defer logger.SetOutput(originalOutput)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: validation.ValidationError{Field: "email", Message: "invalid email format"}, want: http.StatusBadRequest},
		{name: "unknown child field", err: fmt.Errorf("%w: colour", service.ErrUnknownChildField), want: http.StatusBadRequest},
		{name: "invalid date", err: service.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "invalid amount", err: session.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "bad credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "not signed in", err: service.ErrNotSignedIn, want: http.StatusUnauthorized},
		{name: "parent has children", err: service.ErrParentHasChildren, want: http.StatusConflict},
		{name: "email taken", err: service.ErrEmailTaken, want: http.StatusConflict},
		{name: "missing document", err: fmt.Errorf("update teacher: %w", docstore.ErrNotFound), want: http.StatusNotFound},
		{name: "store failure", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithFacadeError(recorder, "test", tt.err)
			if recorder.Code != tt.want {
				t.Errorf("status = %d, want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestRespondWithFacadeErrorHidesStoreFailures(t *testing.T) {
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&bytes.Buffer{})
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondWithFacadeError(recorder, "test", errors.New("dial tcp 10.0.0.5:5432"))

	if strings.Contains(recorder.Body.String(), "10.0.0.5") {
		t.Fatalf("internal error leaked to client: %q", recorder.Body.String())
	}
}
