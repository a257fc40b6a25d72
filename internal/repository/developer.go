package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const developersTable = "developers"

const developerColumns = `id, user_id, name, email, phone, created_at, updated_at`

type DeveloperRepository struct {
	db DBTX
}

func NewDeveloperRepository(db DBTX) *DeveloperRepository {
	return &DeveloperRepository{db: db}
}

func (r *DeveloperRepository) ListDevelopers(ctx context.Context, userID string) ([]developer.Developer, error) {
	stmt := `SELECT ` + developerColumns + ` FROM developers WHERE user_id = @user_id ORDER BY id`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to list developers for user %s: %w", userID, err))
	}

	developers, err := pgx.CollectRows(rows, pgx.RowToStructByName[developer.Developer])
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to collect developers: %w", err))
	}

	return developers, nil
}

func (r *DeveloperRepository) CreateDeveloper(ctx context.Context, userID string, payload *developer.CreateDeveloperPayload) (*developer.Developer, error) {
	stmt := `
		INSERT INTO developers (user_id, name, email, phone)
		VALUES (@user_id, @name, @email, @phone)
		RETURNING ` + developerColumns

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"user_id": userID,
		"name":    payload.Name,
		"email":   payload.Email,
		"phone":   payload.Phone,
	})
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to execute create developer query: %w", err))
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[developer.Developer])
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to collect created developer: %w", err))
	}

	return &created, nil
}

func (r *DeveloperRepository) GetDeveloperByID(ctx context.Context, userID string, id int64) (*developer.Developer, error) {
	stmt := `SELECT ` + developerColumns + ` FROM developers WHERE id = @id AND user_id = @user_id`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to get developer %d: %w", id, err))
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[developer.Developer])
	if err != nil {
		return nil, sqlerr.Wrap(developersTable, fmt.Errorf("failed to collect developer %d: %w", id, err))
	}

	return &found, nil
}

func (r *DeveloperRepository) DeleteDeveloper(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM developers WHERE id = @id AND user_id = @user_id`,
		pgx.NamedArgs{"id": id, "user_id": userID},
	)
	if err != nil {
		return sqlerr.Wrap(developersTable, fmt.Errorf("failed to delete developer %d: %w", id, err))
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.Wrap(developersTable, pgx.ErrNoRows)
	}

	return nil
}
