package service

import (
	"context"

	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/rs/zerolog"
)

type LeadService struct {
	leads LeadStore
}

func NewLeadService(leads LeadStore) *LeadService {
	return &LeadService{leads: leads}
}

func (s *LeadService) ListLeads(ctx context.Context, userID string) ([]lead.Summary, error) {
	leads, err := s.leads.ListLeads(ctx, userID)
	if err != nil {
		return nil, err
	}

	return lead.Summaries(leads), nil
}

func (s *LeadService) CreateLead(ctx context.Context, userID string, payload *lead.CreateLeadPayload) (*lead.Summary, error) {
	created, err := s.leads.CreateLead(ctx, userID, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "lead_created").
		Int64("lead_id", created.ID).
		Msg("lead created")

	summary := created.Summary()
	return &summary, nil
}

func (s *LeadService) GetLead(ctx context.Context, userID string, id int64) (*lead.Detail, error) {
	found, err := s.leads.GetLeadByID(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, errLeadNotFound())
	}

	detail := found.Detail()
	return &detail, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, userID string, payload *lead.UpdateLeadPayload) (*lead.Detail, error) {
	updated, err := s.leads.UpdateLead(ctx, userID, payload)
	if err != nil {
		return nil, notFoundOr(err, errLeadNotFound())
	}

	detail := updated.Detail()
	return &detail, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, userID string, id int64) error {
	if err := s.leads.DeleteLead(ctx, userID, id); err != nil {
		return notFoundOr(err, errLeadNotFound())
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "lead_deleted").
		Int64("lead_id", id).
		Msg("lead deleted")

	return nil
}
