package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/sqlerr"
	"github.com/deppfellow/leadboard/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Error   json.RawMessage `json:"error"`
}

func serveError(t *testing.T, method string, handlerErr error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	s := testutil.NewServer(t)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Add(method, "/boom", func(c echo.Context) error { return handlerErr })

	req := httptest.NewRequest(method, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body %q: %v", rec.Body.String(), err)
		}
	}
	return rec, body
}

func errorString(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("error is not a string: %s", raw)
	}
	return s
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "http error keeps status and message",
			err:     errs.NewNotFoundError("Lead does not exist.", true, nil),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Lead does not exist.",
		},
		{
			name:    "soft failure is written with 200",
			err:     errs.NewConflictError("Developer is already added."),
			status:  http.StatusOK,
			code:    "CONFLICT",
			message: "Developer is already added.",
		},
		{
			name:    "no rows from a wrapped table",
			err:     sqlerr.Wrap("developers", fmt.Errorf("get developer: %w", pgx.ErrNoRows)),
			status:  http.StatusNotFound,
			code:    "DEVELOPER_NOT_FOUND",
			message: "Developer not found",
		},
		{
			name:    "unknown errors are hidden",
			err:     errors.New("dial tcp 10.0.0.1:5432: connection refused"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
		{
			name:    "echo errors keep their status",
			err:     echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			status:  http.StatusMethodNotAllowed,
			code:    "METHOD_NOT_ALLOWED",
			message: "Method Not Allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, http.MethodGet, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if body.Success {
				t.Error("success: got true")
			}
			if body.Code != tt.code {
				t.Errorf("code: got %q, want %q", body.Code, tt.code)
			}
			if got := errorString(t, body.Error); got != tt.message {
				t.Errorf("error: got %q, want %q", got, tt.message)
			}
		})
	}
}

func TestGlobalErrorHandler_FieldErrors(t *testing.T) {
	err := errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
		{Field: "title", Error: "is required"},
		{Field: "clientName", Error: "must not be blank"},
	})

	rec, body := serveError(t, http.MethodPost, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}

	var fields map[string][]string
	if err := json.Unmarshal(body.Error, &fields); err != nil {
		t.Fatalf("error is not a field map: %s", body.Error)
	}
	if len(fields["title"]) != 1 || fields["title"][0] != "is required" {
		t.Errorf("title errors: %v", fields["title"])
	}
	if len(fields["clientName"]) != 1 {
		t.Errorf("clientName errors: %v", fields["clientName"])
	}
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	s := testutil.NewServer(t)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := errorString(t, body.Error); got != "Route not found" {
		t.Errorf("error: got %q", got)
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	s := testutil.NewServer(t)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	called := false
	e.GET("/leads", func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}, NewAuthMiddleware(s).RequireAuth)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))

	if called {
		t.Error("handler ran without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Code != "UNAUTHORIZED" || errorString(t, body.Error) != "Unauthorized" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id %q not echoed (header %q)", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if seen != "req-123" || rec.Header().Get(RequestIDHeader) != "req-123" {
		t.Errorf("incoming id not reused: saw %q", seen)
	}

	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", 65)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, bad)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if seen == bad || seen == "" {
			t.Errorf("malformed id %q was not replaced, saw %q", bad, seen)
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("replacement id not echoed for %q", bad)
		}
	}
}
