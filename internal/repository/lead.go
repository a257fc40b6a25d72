package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const leadsTable = "leads"

const leadColumns = `id, user_id, title, description, client_name, client_email, client_phone, created_at, updated_at`

type LeadRepository struct {
	db DBTX
}

func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) ListLeads(ctx context.Context, userID string) ([]lead.Lead, error) {
	stmt := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = @user_id ORDER BY id`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to list leads for user %s: %w", userID, err))
	}

	leads, err := pgx.CollectRows(rows, pgx.RowToStructByName[lead.Lead])
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to collect leads: %w", err))
	}

	return leads, nil
}

func (r *LeadRepository) CreateLead(ctx context.Context, userID string, payload *lead.CreateLeadPayload) (*lead.Lead, error) {
	stmt := `
		INSERT INTO leads (user_id, title, description, client_name, client_email, client_phone)
		VALUES (@user_id, @title, @description, @client_name, @client_email, @client_phone)
		RETURNING ` + leadColumns

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{
		"user_id":      userID,
		"title":        payload.Title,
		"description":  payload.Description,
		"client_name":  payload.ClientName,
		"client_email": payload.ClientEmail,
		"client_phone": payload.ClientPhone,
	})
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to execute create lead query: %w", err))
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[lead.Lead])
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to collect created lead: %w", err))
	}

	return &created, nil
}

func (r *LeadRepository) GetLeadByID(ctx context.Context, userID string, id int64) (*lead.Lead, error) {
	stmt := `SELECT ` + leadColumns + ` FROM leads WHERE id = @id AND user_id = @user_id`

	rows, err := r.db.Query(ctx, stmt, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to get lead %d: %w", id, err))
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[lead.Lead])
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to collect lead %d: %w", id, err))
	}

	return &found, nil
}

// UpdateLead sets only the fields present in payload; a present null is
// written as NULL. An empty payload returns the lead unchanged.
func (r *LeadRepository) UpdateLead(ctx context.Context, userID string, payload *lead.UpdateLeadPayload) (*lead.Lead, error) {
	if payload.IsEmpty() {
		return r.GetLeadByID(ctx, userID, payload.ID)
	}

	args := pgx.NamedArgs{"id": payload.ID, "user_id": userID}
	var sets []string

	set := func(column string, value model.Optional[string]) {
		if !value.Set {
			return
		}
		sets = append(sets, column+" = @"+column)
		args[column] = value.Ptr()
	}

	set("title", payload.Title)
	set("description", payload.Description)
	set("client_name", payload.ClientName)
	set("client_email", payload.ClientEmail)
	set("client_phone", payload.ClientPhone)
	sets = append(sets, "updated_at = NOW()")

	stmt := fmt.Sprintf(
		`UPDATE leads SET %s WHERE id = @id AND user_id = @user_id RETURNING %s`,
		strings.Join(sets, ", "),
		leadColumns,
	)

	rows, err := r.db.Query(ctx, stmt, args)
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to update lead %d: %w", payload.ID, err))
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[lead.Lead])
	if err != nil {
		return nil, sqlerr.Wrap(leadsTable, fmt.Errorf("failed to collect updated lead %d: %w", payload.ID, err))
	}

	return &updated, nil
}

// DeleteLead removes the lead. Its assignment rows go with it through
// ON DELETE CASCADE.
func (r *LeadRepository) DeleteLead(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM leads WHERE id = @id AND user_id = @user_id`,
		pgx.NamedArgs{"id": id, "user_id": userID},
	)
	if err != nil {
		return sqlerr.Wrap(leadsTable, fmt.Errorf("failed to delete lead %d: %w", id, err))
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.Wrap(leadsTable, pgx.ErrNoRows)
	}

	return nil
}
