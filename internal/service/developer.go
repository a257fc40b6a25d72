package service

import (
	"context"

	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/rs/zerolog"
)

type DeveloperService struct {
	developers DeveloperStore
}

func NewDeveloperService(developers DeveloperStore) *DeveloperService {
	return &DeveloperService{developers: developers}
}

func (s *DeveloperService) ListDevelopers(ctx context.Context, userID string) ([]developer.Response, error) {
	developers, err := s.developers.ListDevelopers(ctx, userID)
	if err != nil {
		return nil, err
	}

	return developer.Responses(developers), nil
}

func (s *DeveloperService) CreateDeveloper(ctx context.Context, userID string, payload *developer.CreateDeveloperPayload) (*developer.Response, error) {
	created, err := s.developers.CreateDeveloper(ctx, userID, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "developer_created").
		Int64("developer_id", created.ID).
		Msg("developer created")

	resp := created.Response()
	return &resp, nil
}

// DeleteDeveloper removes the developer and, through the cascade, every
// assignment it had.
func (s *DeveloperService) DeleteDeveloper(ctx context.Context, userID string, id int64) error {
	if err := s.developers.DeleteDeveloper(ctx, userID, id); err != nil {
		return notFoundOr(err, errDeveloperNotFound())
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "developer_deleted").
		Int64("developer_id", id).
		Msg("developer deleted")

	return nil
}
