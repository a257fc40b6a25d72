package lead

import (
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/validation"
)

// DeveloperAssignment is one of the owner's developers together with
// whether it is linked to a given lead.
type DeveloperAssignment struct {
	developer.Developer
	Assigned bool `db:"assigned"`
}

// Assignments partitions the owner's developers for one lead. Every
// developer appears in exactly one of the two lists.
type Assignments struct {
	Assigned   []developer.Response `json:"assigned"`
	Unassigned []developer.Response `json:"unassigned"`
}

// Partition splits rows into assigned and unassigned developers, keeping
// their order.
func Partition(rows []DeveloperAssignment) Assignments {
	out := Assignments{
		Assigned:   make([]developer.Response, 0),
		Unassigned: make([]developer.Response, 0),
	}

	for i := range rows {
		if rows[i].Assigned {
			out.Assigned = append(out.Assigned, rows[i].Developer.Response())
		} else {
			out.Unassigned = append(out.Unassigned, rows[i].Developer.Response())
		}
	}

	return out
}

// ------------------------------------------------------------

type GetAssignmentsPayload struct {
	LeadID int64 `param:"id" json:"-"`
}

func (p *GetAssignmentsPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// AssignmentPayload is the body of both add and remove requests. Any
// integer developerId is accepted here; the lookup decides whether it exists.
type AssignmentPayload struct {
	LeadID      int64  `param:"id" json:"-"`
	DeveloperID *int64 `json:"developerId" validate:"required"`
}

func (p *AssignmentPayload) Validate() error {
	return validation.Struct(p)
}
