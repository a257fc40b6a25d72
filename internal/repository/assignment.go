package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const assignmentsTable = "lead_developers"

type AssignmentRepository struct {
	db DBTX
}

func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListDevelopersForLead returns every developer the user owns, flagged with
// whether it is assigned to leadID. A single statement keeps the
// assigned/unassigned split consistent.
func (r *AssignmentRepository) ListDevelopersForLead(ctx context.Context, userID string, leadID int64) ([]lead.DeveloperAssignment, error) {
	stmt := `
		SELECT
			d.id, d.user_id, d.name, d.email, d.phone, d.created_at, d.updated_at,
			EXISTS (
				SELECT 1 FROM lead_developers ld
				WHERE ld.lead_id = @lead_id AND ld.developer_id = d.id
			) AS assigned
		FROM developers d
		WHERE d.user_id = @user_id
		ORDER BY d.id`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID, "lead_id": leadID})
	if err != nil {
		return nil, sqlerr.Wrap(assignmentsTable, fmt.Errorf("failed to list developers for lead %d: %w", leadID, err))
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByName[lead.DeveloperAssignment])
	if err != nil {
		return nil, sqlerr.Wrap(assignmentsTable, fmt.Errorf("failed to collect developer assignments: %w", err))
	}

	return assignments, nil
}

// Assign links the developer to the lead when both belong to userID. It
// reports false when the link already exists, so concurrent duplicate
// requests resolve to exactly one insert.
func (r *AssignmentRepository) Assign(ctx context.Context, userID string, leadID, developerID int64) (bool, error) {
	stmt := `
		INSERT INTO lead_developers (lead_id, developer_id)
		SELECT l.id, d.id
		FROM leads l
		JOIN developers d ON d.user_id = l.user_id
		WHERE l.id = @lead_id AND d.id = @developer_id AND l.user_id = @user_id
		ON CONFLICT (lead_id, developer_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, stmt, pgx.NamedArgs{
		"user_id":      userID,
		"lead_id":      leadID,
		"developer_id": developerID,
	})
	if err != nil {
		return false, sqlerr.Wrap(assignmentsTable, fmt.Errorf("failed to assign developer %d to lead %d: %w", developerID, leadID, err))
	}

	return tag.RowsAffected() == 1, nil
}

// Unassign removes the link and reports whether one existed.
func (r *AssignmentRepository) Unassign(ctx context.Context, userID string, leadID, developerID int64) (bool, error) {
	stmt := `
		DELETE FROM lead_developers ld
		USING leads l
		WHERE ld.lead_id = l.id
			AND l.id = @lead_id
			AND l.user_id = @user_id
			AND ld.developer_id = @developer_id`

	tag, err := r.db.Exec(ctx, stmt, pgx.NamedArgs{
		"user_id":      userID,
		"lead_id":      leadID,
		"developer_id": developerID,
	})
	if err != nil {
		return false, sqlerr.Wrap(assignmentsTable, fmt.Errorf("failed to unassign developer %d from lead %d: %w", developerID, leadID, err))
	}

	return tag.RowsAffected() == 1, nil
}
