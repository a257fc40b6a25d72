package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	if got := MakeUpperCaseWithUnderscores("Too Many Requests"); got != "TOO_MANY_REQUESTS" {
		t.Errorf("got %q", got)
	}
}

func TestHTTPError_Body(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		raw, err := json.Marshal(NewNotFoundError("Lead does not exist.", true, nil).Body())
		if err != nil {
			t.Fatal(err)
		}
		want := `{"success":false,"code":"NOT_FOUND","error":"Lead does not exist."}`
		if string(raw) != want {
			t.Errorf("got %s, want %s", raw, want)
		}
	})

	t.Run("field errors", func(t *testing.T) {
		e := ValidationError([]FieldError{
			{Field: "title", Error: "is required"},
			{Field: "title", Error: "must not be blank"},
			{Field: "clientName", Error: "is required"},
		})
		raw, err := json.Marshal(e.Body())
		if err != nil {
			t.Fatal(err)
		}
		want := `{"success":false,"code":"BAD_REQUEST","error":{"clientName":["is required"],"title":["is required","must not be blank"]}}`
		if string(raw) != want {
			t.Errorf("got %s, want %s", raw, want)
		}
	})
}

func TestValidationError(t *testing.T) {
	e := ValidationError([]FieldError{{Field: "title", Error: "may not be null"}})
	if e.Status != http.StatusBadRequest || e.Code != "BAD_REQUEST" || !e.Override {
		t.Errorf("got %+v", e)
	}
	if got := e.FieldMap()["title"]; len(got) != 1 || got[0] != "may not be null" {
		t.Errorf("field map: %v", e.FieldMap())
	}
}

func TestHTTPError_WithStatusCopies(t *testing.T) {
	original := NewNotFoundError("Lead does not exist.", true, nil)
	moved := original.WithStatus(http.StatusBadRequest)

	if original.Status != http.StatusNotFound {
		t.Errorf("original mutated: %d", original.Status)
	}
	if moved.Status != http.StatusBadRequest || moved.Message != original.Message {
		t.Errorf("copy: %+v", moved)
	}
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewConflictError("Developer is already added."))

	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("wrapped HTTPError not matched")
	}

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) || httpErr.Status != http.StatusOK || httpErr.Code != "CONFLICT" {
		t.Errorf("conflict error: %+v", httpErr)
	}
}
