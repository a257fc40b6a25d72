// Package errs defines the error types returned to API clients.
//
// Every failure leaving the HTTP layer is an *HTTPError. The global error
// handler renders it into the response envelope:
//
//	{ "success": false, "code": "NOT_FOUND", "error": "Lead does not exist." }
//
// Field-level validation failures render the error as a mapping from the
// request field name to its messages:
//
//	{ "success": false, "code": "BAD_REQUEST", "error": { "title": ["is required"] } }
package errs

import "strings"

// FieldError is a validation failure tied to a single request field.
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "clientName").
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// HTTPError is the application error type surfaced through the HTTP layer.
//
// Status is usually an error status, but soft failures (see NewConflictError)
// carry 200 so clients receive a success:false envelope without an error code.
type HTTPError struct {
	Code    string
	Message string
	Status  int

	// Override marks messages that are safe to show to end users verbatim.
	Override bool

	// Errors holds field-level validation errors.
	Errors []FieldError
}

// Response is the failure envelope written to the client.
type Response struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   any    `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError. Code and Status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithStatus returns a copy of the error reported with a different HTTP status.
//
// The assignment endpoints use it to surface a missing lead or developer as
// 400, or as a 200 soft failure, instead of the usual 404.
func (e *HTTPError) WithStatus(status int) *HTTPError {
	cp := *e
	cp.Status = status
	return &cp
}

// FieldMap groups field errors by field name, keeping their original order.
func (e *HTTPError) FieldMap() map[string][]string {
	if len(e.Errors) == 0 {
		return nil
	}

	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Error)
	}
	return out
}

// Body builds the response envelope for this error.
func (e *HTTPError) Body() Response {
	resp := Response{
		Success: false,
		Code:    e.Code,
		Error:   e.Message,
	}

	if fields := e.FieldMap(); fields != nil {
		resp.Error = fields
	}

	return resp
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
