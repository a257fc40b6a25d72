// Package service contains the business rules.
//
// Services sit between handlers and repositories. Each one receives the
// caller's user id explicitly and scopes every store call with it. A record
// owned by someone else is reported exactly like a missing one.
package service

import (
	"context"

	"github.com/deppfellow/leadboard/internal/lib/job"
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/repository"
	"github.com/deppfellow/leadboard/internal/server"
)

// LeadStore persists leads.
type LeadStore interface {
	ListLeads(ctx context.Context, userID string) ([]lead.Lead, error)
	CreateLead(ctx context.Context, userID string, payload *lead.CreateLeadPayload) (*lead.Lead, error)
	GetLeadByID(ctx context.Context, userID string, id int64) (*lead.Lead, error)
	UpdateLead(ctx context.Context, userID string, payload *lead.UpdateLeadPayload) (*lead.Lead, error)
	DeleteLead(ctx context.Context, userID string, id int64) error
}

// DeveloperStore persists developers.
type DeveloperStore interface {
	ListDevelopers(ctx context.Context, userID string) ([]developer.Developer, error)
	CreateDeveloper(ctx context.Context, userID string, payload *developer.CreateDeveloperPayload) (*developer.Developer, error)
	GetDeveloperByID(ctx context.Context, userID string, id int64) (*developer.Developer, error)
	DeleteDeveloper(ctx context.Context, userID string, id int64) error
}

// AssignmentStore persists lead-developer links.
type AssignmentStore interface {
	ListDevelopersForLead(ctx context.Context, userID string, leadID int64) ([]lead.DeveloperAssignment, error)
	Assign(ctx context.Context, userID string, leadID, developerID int64) (bool, error)
	Unassign(ctx context.Context, userID string, leadID, developerID int64) (bool, error)
}

// Notifier queues assignment notifications.
type Notifier interface {
	EnqueueDeveloperAssigned(ctx context.Context, p job.DeveloperAssignedPayload) error
}

type Services struct {
	Auth       *AuthService
	Lead       *LeadService
	Developer  *DeveloperService
	Assignment *AssignmentService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:       authService,
		Lead:       NewLeadService(repos.Lead),
		Developer:  NewDeveloperService(repos.Developer),
		Assignment: NewAssignmentService(repos.Lead, repos.Developer, repos.Assignment, notifier),
	}, nil
}
