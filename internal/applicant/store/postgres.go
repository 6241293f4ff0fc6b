package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoptrack/internal/applicant"
	"shoptrack/internal/applicant/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
	"shoptrack/pkg/platform/tx"
)

// Postgres persists applicants through pgx. The open data maps live in
// JSONB columns and partial updates merge with the || operator so
// concurrent staff edits stay merge-wins per key.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

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

func (s *Postgres) Create(ctx context.Context, a *models.Applicant) error {
	formData, err := json.Marshal(a.FormData)
	if err != nil {
		return fmt.Errorf("encode form_data: %w", err)
	}
	internalData, err := json.Marshal(a.InternalData)
	if err != nil {
		return fmt.Errorf("encode internal_data: %w", err)
	}

	const q = `INSERT INTO applicants
		(id, shop_id, created_at, updated_at, full_name, email, phone,
		 position_applied, status, source, form_data, internal_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = s.q(ctx).Exec(ctx, q,
		uuid.UUID(a.ID), uuid.UUID(a.ShopID), a.CreatedAt, a.UpdatedAt,
		a.FullName, a.Email, a.Phone, a.PositionApplied, a.Status,
		nullable(a.Source), formData, internalData,
	)
	if err != nil {
		return fmt.Errorf("create applicant: %w", err)
	}
	return nil
}

func (s *Postgres) ForShop(shopID id.ShopID) applicant.Scoped {
	return &pgScoped{parent: s, shopID: shopID}
}

type pgScoped struct {
	parent *Postgres
	shopID id.ShopID
}

func (s *pgScoped) List(ctx context.Context, filter models.ListFilter) ([]models.Summary, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT id, created_at, full_name, email, phone, position_applied, status, source
		FROM applicants WHERE shop_id = $1`)
	args = append(args, uuid.UUID(s.shopID))

	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		fmt.Fprintf(&sb, " AND position_applied = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		fmt.Fprintf(&sb, " AND (full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n)
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := s.parent.q(ctx).Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	out := []models.Summary{}
	for rows.Next() {
		var (
			sum    models.Summary
			appID  uuid.UUID
			source *string
		)
		if err := rows.Scan(&appID, &sum.CreatedAt, &sum.FullName, &sum.Email,
			&sum.Phone, &sum.PositionApplied, &sum.Status, &source); err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		sum.ID = id.ApplicantID(appID)
		if source != nil {
			sum.Source = *source
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return out, nil
}

func (s *pgScoped) Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	const q = `SELECT id, shop_id, created_at, updated_at, full_name, email, phone,
		position_applied, status, source, form_data, internal_data
		FROM applicants WHERE id = $1 AND shop_id = $2`

	row := s.parent.q(ctx).QueryRow(ctx, q, uuid.UUID(applicantID), uuid.UUID(s.shopID))

	var (
		a            models.Applicant
		appID        uuid.UUID
		shopID       uuid.UUID
		source       *string
		formData     []byte
		internalData []byte
	)
	err := row.Scan(&appID, &shopID, &a.CreatedAt, &a.UpdatedAt, &a.FullName,
		&a.Email, &a.Phone, &a.PositionApplied, &a.Status, &source,
		&formData, &internalData)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get applicant: %w", err)
	}

	a.ID = id.ApplicantID(appID)
	a.ShopID = id.ShopID(shopID)
	if source != nil {
		a.Source = *source
	}
	a.FormData = map[string]any{}
	if len(formData) > 0 {
		if err := json.Unmarshal(formData, &a.FormData); err != nil {
			return nil, fmt.Errorf("decode form_data: %w", err)
		}
	}
	a.InternalData = map[string]any{}
	if len(internalData) > 0 {
		if err := json.Unmarshal(internalData, &a.InternalData); err != nil {
			return nil, fmt.Errorf("decode internal_data: %w", err)
		}
	}
	return &a, nil
}

func (s *pgScoped) Update(ctx context.Context, a *models.Applicant, patch models.Update) error {
	formPatch, err := json.Marshal(orEmpty(patch.FormData))
	if err != nil {
		return fmt.Errorf("encode form_data: %w", err)
	}
	internalPatch, err := json.Marshal(orEmpty(patch.InternalData))
	if err != nil {
		return fmt.Errorf("encode internal_data: %w", err)
	}

	const q = `UPDATE applicants SET
		full_name = $3, email = $4, phone = $5, position_applied = $6,
		status = $7, source = $8,
		form_data = form_data || $9,
		internal_data = internal_data || $10,
		updated_at = $11
		WHERE id = $1 AND shop_id = $2`
	tag, err := s.parent.q(ctx).Exec(ctx, q,
		uuid.UUID(a.ID), uuid.UUID(s.shopID),
		a.FullName, a.Email, a.Phone, a.PositionApplied, a.Status,
		nullable(a.Source), formPatch, internalPatch, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *pgScoped) Delete(ctx context.Context, applicantID id.ApplicantID) error {
	tag, err := s.parent.q(ctx).Exec(ctx,
		`DELETE FROM applicants WHERE id = $1 AND shop_id = $2`,
		uuid.UUID(applicantID), uuid.UUID(s.shopID),
	)
	if err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
