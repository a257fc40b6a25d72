package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	return httpErr
}

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23505": UniqueViolation,
		"23503": ForeignKeyViolation,
		"23502": NotNullViolation,
		"22001": StringDataRightTruncation,
		"40P01": DeadlockDetected,
		"99999": Other,
	}
	for state, want := range tests {
		if got := MapCode(state); got != want {
			t.Errorf("MapCode(%q) = %v, want %v", state, got, want)
		}
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "no rows with table",
			err:     Wrap("leads", fmt.Errorf("get lead: %w", pgx.ErrNoRows)),
			status:  http.StatusNotFound,
			code:    "LEAD_NOT_FOUND",
			message: "Lead not found",
		},
		{
			name:    "no rows without table",
			err:     pgx.ErrNoRows,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Resource not found",
		},
		{
			name: "foreign key violation",
			err: Wrap("lead_developers", &pgconn.PgError{
				Code:       "23503",
				TableName:  "lead_developers",
				ColumnName: "developer_id",
			}),
			status:  http.StatusBadRequest,
			code:    "DEVELOPER_NOT_FOUND",
			message: "The referenced Developer does not exist",
		},
		{
			name: "unique violation names the column",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "developers",
				ConstraintName: "developers_email_key",
			},
			status:  http.StatusBadRequest,
			code:    "DEVELOPER_ALREADY_EXISTS",
			message: "A Developer with this Email already exists",
		},
		{
			name: "duplicate assignment on primary key",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "lead_developers",
				ConstraintName: "lead_developers_pkey",
			},
			status:  http.StatusBadRequest,
			code:    "ASSIGNMENT_ALREADY_EXISTS",
			message: "This assignment already exists",
		},
		{
			name:    "string too long",
			err:     Wrap("leads", &pgconn.PgError{Code: "22001"}),
			status:  http.StatusBadRequest,
			code:    "LEAD_INVALID",
			message: "One or more values are too long",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := asHTTPError(t, HandleError(tt.err))
			if got.Status != tt.status {
				t.Errorf("status: got %d, want %d", got.Status, tt.status)
			}
			if got.Code != tt.code {
				t.Errorf("code: got %q, want %q", got.Code, tt.code)
			}
			if got.Message != tt.message {
				t.Errorf("message: got %q, want %q", got.Message, tt.message)
			}
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewConflictError("Developer is already added.")
	if got := HandleError(original); got != error(original) {
		t.Errorf("got %v, want the original error", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap("leads", nil) != nil {
		t.Error("Wrap(nil) != nil")
	}

	err := Wrap("leads", pgx.ErrNoRows)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Error("wrapped error lost pgx.ErrNoRows")
	}
	if ErrCode(err) != Other {
		t.Errorf("ErrCode: got %v", ErrCode(err))
	}
}
