// Package developer defines the Developer entity, its request payloads and
// its response projection.
package developer

import (
	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/validation"
)

// Developer is a team member owned by a single user.
type Developer struct {
	model.Base
	UserID string `json:"-" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
	Phone  string `json:"phone" db:"phone"`
}

// Response is the public projection used by every developer endpoint.
type Response struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (d *Developer) Response() Response {
	return Response{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
	}
}

// Responses projects a slice, returning an empty slice rather than nil.
func Responses(developers []Developer) []Response {
	out := make([]Response, 0, len(developers))
	for i := range developers {
		out = append(out, developers[i].Response())
	}
	return out
}

// ------------------------------------------------------------

type CreateDeveloperPayload struct {
	Name  string `json:"name" validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"required,notblank,email,max=255"`
	Phone string `json:"phone" validate:"required,notblank,max=50"`
}

func (p *CreateDeveloperPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type GetDevelopersPayload struct{}

func (p *GetDevelopersPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type DeleteDeveloperPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *DeleteDeveloperPayload) Validate() error {
	return nil
}
