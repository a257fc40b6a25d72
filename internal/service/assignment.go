package service

import (
	"context"
	"net/http"

	"github.com/deppfellow/leadboard/internal/errs"
	"github.com/deppfellow/leadboard/internal/lib/job"
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/rs/zerolog"
)

const (
	MessageDeveloperAdded   = "Developer is added into the lead."
	MessageDeveloperRemoved = "Developer is removed from the lead."

	messageAlreadyAssigned = "Developer is already added."
	messageNotAssigned     = "Developer is not there."
)

// AssignmentService manages which developers work on which lead.
//
// Its failure statuses differ from the rest of the API, and existing
// clients depend on them:
//   - listing for a missing lead: 200 with success:false
//   - add/remove with a missing lead or developer: 400
//   - duplicate add or removing an absent link: 200 with success:false
type AssignmentService struct {
	leads       LeadStore
	developers  DeveloperStore
	assignments AssignmentStore
	notifier    Notifier
}

// NewAssignmentService wires the stores. notifier may be nil.
func NewAssignmentService(leads LeadStore, developers DeveloperStore, assignments AssignmentStore, notifier Notifier) *AssignmentService {
	return &AssignmentService{
		leads:       leads,
		developers:  developers,
		assignments: assignments,
		notifier:    notifier,
	}
}

// ListAssignments partitions the user's developers for leadID.
func (s *AssignmentService) ListAssignments(ctx context.Context, userID string, leadID int64) (*lead.Assignments, error) {
	if _, err := s.leads.GetLeadByID(ctx, userID, leadID); err != nil {
		return nil, notFoundOr(err, errs.NewNotFoundError("Lead not found", true, &leadNotFoundCode).WithStatus(http.StatusOK))
	}

	rows, err := s.assignments.ListDevelopersForLead(ctx, userID, leadID)
	if err != nil {
		return nil, err
	}

	assignments := lead.Partition(rows)
	return &assignments, nil
}

// resolve loads both ends of an assignment, mapping either missing record
// to a 400.
func (s *AssignmentService) resolve(ctx context.Context, userID string, leadID, developerID int64) (*lead.Lead, *developer.Developer, error) {
	l, err := s.leads.GetLeadByID(ctx, userID, leadID)
	if err != nil {
		return nil, nil, asBadRequest(notFoundOr(err, errLeadNotFound()))
	}

	d, err := s.developers.GetDeveloperByID(ctx, userID, developerID)
	if err != nil {
		return nil, nil, asBadRequest(notFoundOr(err, errDeveloperNotFound()))
	}

	return l, d, nil
}

// AddDeveloper links the developer to the lead and queues a notification
// email. A failed enqueue is logged and does not fail the request.
func (s *AssignmentService) AddDeveloper(ctx context.Context, userID string, payload *lead.AssignmentPayload) (string, error) {
	l, d, err := s.resolve(ctx, userID, payload.LeadID, *payload.DeveloperID)
	if err != nil {
		return "", err
	}

	added, err := s.assignments.Assign(ctx, userID, l.ID, d.ID)
	if err != nil {
		return "", err
	}
	if !added {
		return "", errs.NewConflictError(messageAlreadyAssigned)
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("event", "developer_assigned").
		Int64("lead_id", l.ID).
		Int64("developer_id", d.ID).
		Msg("developer assigned to lead")

	if s.notifier != nil {
		err := s.notifier.EnqueueDeveloperAssigned(ctx, job.DeveloperAssignedPayload{
			LeadID:         l.ID,
			LeadTitle:      l.Title,
			ClientName:     l.ClientName,
			DeveloperID:    d.ID,
			DeveloperName:  d.Name,
			DeveloperEmail: d.Email,
		})
		if err != nil {
			logger.Error().
				Err(err).
				Int64("lead_id", l.ID).
				Int64("developer_id", d.ID).
				Msg("failed to enqueue developer assigned notification")
		}
	}

	return MessageDeveloperAdded, nil
}

// RemoveDeveloper unlinks the developer from the lead.
func (s *AssignmentService) RemoveDeveloper(ctx context.Context, userID string, payload *lead.AssignmentPayload) (string, error) {
	l, d, err := s.resolve(ctx, userID, payload.LeadID, *payload.DeveloperID)
	if err != nil {
		return "", err
	}

	removed, err := s.assignments.Unassign(ctx, userID, l.ID, d.ID)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", errs.NewConflictError(messageNotAssigned)
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "developer_unassigned").
		Int64("lead_id", l.ID).
		Int64("developer_id", d.ID).
		Msg("developer removed from lead")

	return MessageDeveloperRemoved, nil
}
