// Package sqlerr turns PostgreSQL driver errors into application errors.
//
// Raw SQLSTATE codes are mapped onto a small Code enum. HandleError then
// converts them into *errs.HTTPError values with user-facing messages, so a
// unique violation on developers.email reaches the client as a 400 rather
// than a 500.
package sqlerr

import (
	"fmt"
)

// Code is the category of a database error.
type Code int

const (
	Other Code = iota
	NotNullViolation
	ForeignKeyViolation
	UniqueViolation
	CheckViolation
	ExclusionViolation
	StringDataRightTruncation
	NumericValueOutOfRange
	InvalidTextRepresentation
	SerializationFailure
	DeadlockDetected
	QueryCanceled
)

var codeNames = map[Code]string{
	Other:                     "other",
	NotNullViolation:          "not_null_violation",
	ForeignKeyViolation:       "foreign_key_violation",
	UniqueViolation:           "unique_violation",
	CheckViolation:            "check_violation",
	ExclusionViolation:        "exclusion_violation",
	StringDataRightTruncation: "string_data_right_truncation",
	NumericValueOutOfRange:    "numeric_value_out_of_range",
	InvalidTextRepresentation: "invalid_text_representation",
	SerializationFailure:      "serialization_failure",
	DeadlockDetected:          "deadlock_detected",
	QueryCanceled:             "query_canceled",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[Other]
}

// MapCode maps a SQLSTATE code onto Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22001":
		return StringDataRightTruncation
	case "22003":
		return NumericValueOutOfRange
	case "22P02":
		return InvalidTextRepresentation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "57014":
		return QueryCanceled
	default:
		return Other
	}
}

// Severity mirrors the PostgreSQL message severity levels.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityDebug
	SeverityLog
	SeverityInfo
	SeverityNotice
	SeverityWarning
	SeverityError
	SeverityFatal
	SeverityPanic
)

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch severity {
	case "DEBUG":
		return SeverityDebug
	case "LOG":
		return SeverityLog
	case "INFO":
		return SeverityInfo
	case "NOTICE":
		return SeverityNotice
	case "WARNING":
		return SeverityWarning
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Code, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// TableError annotates an error with the table a statement targeted.
//
// Repositories wrap their failures with it so HandleError can name the
// entity in messages even when the driver did not report a table, as with
// pgx.ErrNoRows.
type TableError struct {
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return "table:" + e.Table + ": " + e.Err.Error()
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// Wrap annotates err with table. A nil err stays nil.
func Wrap(table string, err error) error {
	if err == nil {
		return nil
	}
	return &TableError{Table: table, Err: err}
}
