package service

import (
	"errors"
	"net/http"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/jackc/pgx/v5"
)

var (
	leadNotFoundCode      = "LEAD_NOT_FOUND"
	developerNotFoundCode = "DEVELOPER_NOT_FOUND"
)

func errLeadNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Lead does not exist.", true, &leadNotFoundCode)
}

func errDeveloperNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Developer does not exist.", true, &developerNotFoundCode)
}

// notFoundOr maps pgx.ErrNoRows to notFound and passes anything else through.
func notFoundOr(err error, notFound *errs.HTTPError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

// asBadRequest reports a not-found error as 400, the status the assignment
// endpoints use for a missing lead or developer.
func asBadRequest(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		return httpErr.WithStatus(http.StatusBadRequest)
	}
	return err
}
