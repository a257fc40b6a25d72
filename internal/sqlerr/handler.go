package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/leadboard/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// entity is how a table or foreign key column is named to API clients.
type entity struct {
	Name string
	Code string
}

var (
	leadEntity       = entity{Name: "Lead", Code: "LEAD"}
	developerEntity  = entity{Name: "Developer", Code: "DEVELOPER"}
	assignmentEntity = entity{Name: "Assignment", Code: "ASSIGNMENT"}
	recordEntity     = entity{Name: "Record", Code: "RECORD"}
)

var tableEntities = map[string]entity{
	"leads":           leadEntity,
	"developers":      developerEntity,
	"lead_developers": assignmentEntity,
}

var columnEntities = map[string]entity{
	"lead_id":      leadEntity,
	"developer_id": developerEntity,
}

var titleCaser = cases.Title(language.English)

// ErrCode reports the Code of err, or Other when err is not a database error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}

	var driverErr *pgconn.PgError
	if errors.As(err, &driverErr) {
		return MapCode(driverErr.Code)
	}

	return Other
}

// ConvertPgError normalizes a raw *pgconn.PgError.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// entityFor resolves a known table, or derives a name from an unknown one.
func entityFor(table string) entity {
	if e, ok := tableEntities[table]; ok {
		return e
	}
	if table == "" {
		return recordEntity
	}

	singular := strings.TrimSuffix(table, "s")
	return entity{
		Name: humanize(singular),
		Code: strings.ToUpper(singular),
	}
}

// referencedEntity names the row a foreign key column points at.
func referencedEntity(column, table string) entity {
	if e, ok := columnEntities[strings.ToLower(column)]; ok {
		return e
	}
	if base, ok := strings.CutSuffix(strings.ToLower(column), "_id"); ok && base != "" {
		return entity{Name: humanize(base), Code: strings.ToUpper(base)}
	}
	return entityFor(table)
}

func humanize(text string) string {
	return titleCaser.String(strings.ReplaceAll(text, "_", " "))
}

// uniqueColumn reads the column out of a <table>_<column>_key constraint.
// Primary keys and composite constraints yield "".
func uniqueColumn(table, constraint string) string {
	rest, ok := strings.CutPrefix(constraint, table+"_")
	if !ok {
		return ""
	}
	column, ok := strings.CutSuffix(rest, "_key")
	if !ok {
		return ""
	}
	return column
}

func fromPgError(sqlErr *Error) *errs.HTTPError {
	subject := entityFor(sqlErr.TableName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		ref := referencedEntity(sqlErr.ColumnName, sqlErr.TableName)
		code := ref.Code + "_NOT_FOUND"
		return errs.NewBadRequestError(
			fmt.Sprintf("The referenced %s does not exist", ref.Name), false, &code, nil)

	case UniqueViolation:
		code := subject.Code + "_ALREADY_EXISTS"
		message := fmt.Sprintf("This %s already exists", strings.ToLower(subject.Name))
		if column := uniqueColumn(sqlErr.TableName, sqlErr.ConstraintName); column != "" {
			message = fmt.Sprintf("A %s with this %s already exists", subject.Name, humanize(column))
		}
		return errs.NewBadRequestError(message, true, &code, nil)

	case NotNullViolation:
		code := subject.Code + "_REQUIRED"
		field := strings.ToLower(sqlErr.ColumnName)
		if field == "" {
			return errs.NewBadRequestError("A required value is missing", true, &code, nil)
		}
		return errs.NewBadRequestError(
			fmt.Sprintf("The %s is required", humanize(field)), true, &code,
			[]errs.FieldError{{Field: field, Error: "is required"}})

	case CheckViolation:
		code := subject.Code + "_INVALID"
		if sqlErr.ColumnName != "" {
			return errs.NewBadRequestError(
				fmt.Sprintf("The %s value does not meet required conditions", humanize(sqlErr.ColumnName)), true, &code, nil)
		}
		return errs.NewBadRequestError("One or more values do not meet required conditions", true, &code, nil)

	case StringDataRightTruncation:
		code := subject.Code + "_INVALID"
		return errs.NewBadRequestError("One or more values are too long", true, &code, nil)

	case NumericValueOutOfRange, InvalidTextRepresentation:
		code := subject.Code + "_INVALID"
		return errs.NewBadRequestError("One or more values are not valid", true, &code, nil)
	}

	return nil
}

// HandleError converts a database error into an *errs.HTTPError.
// HTTP errors pass through. Integrity and data errors become 400,
// pgx.ErrNoRows becomes 404 (entity-coded when wrapped with Wrap), and
// anything else becomes a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var table string
	var tableErr *TableError
	if errors.As(err, &tableErr) {
		table = tableErr.Table
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		if sqlErr.TableName == "" {
			sqlErr.TableName = table
		}
		if mapped := fromPgError(sqlErr); mapped != nil {
			return mapped
		}
		return errs.NewInternalServerError()
	}

	if errors.Is(err, pgx.ErrNoRows) {
		if table == "" {
			return errs.NewNotFoundError("Resource not found", false, nil)
		}
		e := entityFor(table)
		code := e.Code + "_NOT_FOUND"
		return errs.NewNotFoundError(e.Name+" not found", true, &code)
	}

	return errs.NewInternalServerError()
}
