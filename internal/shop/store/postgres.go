package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

// Postgres persists shops through database/sql. Settings live in a
// JSONB column.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfSlugAvailable(ctx context.Context, shop *models.Shop) error {
	settings, err := json.Marshal(shop.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	const q = `INSERT INTO shops (id, name, slug, settings, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = s.db.ExecContext(ctx, q,
		uuid.UUID(shop.ID), shop.Name, shop.Slug, settings, shop.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23505 unique_violation on the slug index
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create shop: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, shopID id.ShopID) (*models.Shop, error) {
	const q = `SELECT id, name, slug, settings, created_at FROM shops WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, q, uuid.UUID(shopID)))
}

func (s *Postgres) FindBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	const q = `SELECT id, name, slug, settings, created_at FROM shops WHERE slug = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, q, slug))
}

func (s *Postgres) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM shops WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (s *Postgres) scanOne(row *sql.Row) (*models.Shop, error) {
	var (
		shop     models.Shop
		shopID   uuid.UUID
		settings []byte
	)
	err := row.Scan(&shopID, &shop.Name, &shop.Slug, &settings, &shop.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan shop: %w", err)
	}

	shop.ID = id.ShopID(shopID)
	shop.Settings = map[string]any{}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &shop.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &shop, nil
}
