package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoptrack/internal/note/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/tx"
)

// Postgres persists ledger entries through pgx. All statements honor a
// transaction carried in the context so the status-change note commits
// with its applicant update.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// querier returns the context transaction when one is running.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.pool
}

func (s *Postgres) Append(ctx context.Context, note *models.Note) error {
	const q = `INSERT INTO applicant_notes (id, applicant_id, created_at, added_by, added_by_id, message)
		VALUES ($1, $2, $3, $4, $5, $6)`

	var addedByID *uuid.UUID
	if note.AddedByID != nil {
		u := uuid.UUID(*note.AddedByID)
		addedByID = &u
	}
	_, err := s.q(ctx).Exec(ctx, q,
		uuid.UUID(note.ID), uuid.UUID(note.ApplicantID), note.CreatedAt,
		note.AddedBy, addedByID, note.Message,
	)
	if err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

func (s *Postgres) ListByApplicant(ctx context.Context, applicantID id.ApplicantID) ([]models.Note, error) {
	const q = `SELECT id, applicant_id, created_at, added_by, added_by_id, message
		FROM applicant_notes WHERE applicant_id = $1
		ORDER BY created_at DESC`

	rows, err := s.q(ctx).Query(ctx, q, uuid.UUID(applicantID))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var (
			note      models.Note
			noteID    uuid.UUID
			appID     uuid.UUID
			addedByID *uuid.UUID
		)
		if err := rows.Scan(&noteID, &appID, &note.CreatedAt, &note.AddedBy, &addedByID, &note.Message); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.ID = id.NoteID(noteID)
		note.ApplicantID = id.ApplicantID(appID)
		if addedByID != nil {
			author := id.UserID(*addedByID)
			note.AddedByID = &author
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *Postgres) DeleteByApplicant(ctx context.Context, applicantID id.ApplicantID) error {
	_, err := s.q(ctx).Exec(ctx,
		`DELETE FROM applicant_notes WHERE applicant_id = $1`, uuid.UUID(applicantID),
	)
	if err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}
	return nil
}
