// Package lead defines the Lead entity, the lead-developer assignment
// types, their request payloads and their response projections.
package lead

import (
	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/validation"
)

// Lead is a sales opportunity owned by a single user.
type Lead struct {
	model.Base
	UserID      string  `json:"-" db:"user_id"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
	ClientName  string  `json:"clientName" db:"client_name"`
	ClientEmail *string `json:"clientEmail" db:"client_email"`
	ClientPhone *string `json:"clientPhone" db:"client_phone"`
}

// Summary is the projection used by the collection endpoints.
type Summary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Detail is the projection used by the detail endpoints.
type Detail struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ClientName  string  `json:"clientName"`
	ClientEmail *string `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone"`
}

func (l *Lead) Summary() Summary {
	return Summary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
	}
}

func (l *Lead) Detail() Detail {
	return Detail{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		ClientName:  l.ClientName,
		ClientEmail: l.ClientEmail,
		ClientPhone: l.ClientPhone,
	}
}

// Summaries projects a slice, returning an empty slice rather than nil.
func Summaries(leads []Lead) []Summary {
	out := make([]Summary, 0, len(leads))
	for i := range leads {
		out = append(out, leads[i].Summary())
	}
	return out
}

// ------------------------------------------------------------

type CreateLeadPayload struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description" validate:"omitnil,max=5000"`
	ClientName  string  `json:"clientName" validate:"required,notblank,max=255"`
	ClientEmail *string `json:"clientEmail" validate:"omitnil,max=255"`
	ClientPhone *string `json:"clientPhone" validate:"omitnil,max=50"`
}

func (p *CreateLeadPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetLeadsPayload struct{}

func (p *GetLeadsPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetLeadByIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *GetLeadByIDPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// UpdateLeadPayload is a partial update. Absent fields are left unchanged.
// A null clears the nullable columns and is rejected for title and
// clientName.
type UpdateLeadPayload struct {
	ID          int64                  `param:"id" json:"-"`
	Title       model.Optional[string] `json:"title" validate:"omitnil,notblank,max=255"`
	Description model.Optional[string] `json:"description" validate:"omitnil,max=5000"`
	ClientName  model.Optional[string] `json:"clientName" validate:"omitnil,notblank,max=255"`
	ClientEmail model.Optional[string] `json:"clientEmail" validate:"omitnil,max=255"`
	ClientPhone model.Optional[string] `json:"clientPhone" validate:"omitnil,max=50"`
}

func (p *UpdateLeadPayload) Validate() error {
	var fieldErrors []errs.FieldError
	if p.Title.Null {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "title", Error: "may not be null"})
	}
	if p.ClientName.Null {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "clientName", Error: "may not be null"})
	}

	if err := validation.Struct(p); err != nil {
		fieldErrors = append(fieldErrors, validation.FieldErrors(err)...)
	}

	if len(fieldErrors) > 0 {
		return errs.ValidationError(fieldErrors)
	}
	return nil
}

// IsEmpty reports whether the payload changes nothing.
func (p *UpdateLeadPayload) IsEmpty() bool {
	return !p.Title.Set &&
		!p.Description.Set &&
		!p.ClientName.Set &&
		!p.ClientEmail.Set &&
		!p.ClientPhone.Set
}

// ------------------------------------------------------------

type DeleteLeadPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *DeleteLeadPayload) Validate() error {
	return nil
}
