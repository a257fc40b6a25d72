// Package repository holds the SQL for every entity.
//
// Every statement is filtered by the owning user id, so rows belonging to
// another user behave exactly like missing rows. Missing rows surface as
// pgx.ErrNoRows wrapped with the table name (see sqlerr.Wrap).
package repository

import (
	"context"

	"github.com/deppfellow/leadboard/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use. A pgx.Tx
// satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Lead       *LeadRepository
	Developer  *DeveloperRepository
	Assignment *AssignmentRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Lead:       NewLeadRepository(s.DB.Pool),
		Developer:  NewDeveloperRepository(s.DB.Pool),
		Assignment: NewAssignmentRepository(s.DB.Pool),
	}
}
