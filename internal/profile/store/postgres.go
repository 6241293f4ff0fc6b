package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shoptrack/internal/profile/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

// Postgres persists profiles through database/sql.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	const q = `SELECT id, email, full_name, shop_id, created_at
		FROM profiles WHERE id = $1`

	var (
		p      models.Profile
		uid    uuid.UUID
		shopID uuid.NullUUID
	)
	err := s.db.QueryRowContext(ctx, q, uuid.UUID(userID)).Scan(
		&uid, &p.Email, &p.FullName, &shopID, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p.ID = id.UserID(uid)
	if shopID.Valid {
		bound := id.ShopID(shopID.UUID)
		p.ShopID = &bound
	}
	return &p, nil
}

func (s *Postgres) Upsert(ctx context.Context, profile *models.Profile) error {
	const q = `INSERT INTO profiles (id, email, full_name, shop_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, full_name = EXCLUDED.full_name`

	var shopID uuid.NullUUID
	if profile.ShopID != nil {
		shopID = uuid.NullUUID{UUID: uuid.UUID(*profile.ShopID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, q,
		uuid.UUID(profile.ID), profile.Email, profile.FullName, shopID, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *Postgres) BindShop(ctx context.Context, userID id.UserID, shopID id.ShopID) error {
	// Guard in SQL so two concurrent signups cannot both bind.
	const q = `UPDATE profiles SET shop_id = $2 WHERE id = $1 AND shop_id IS NULL`

	res, err := s.db.ExecContext(ctx, q, uuid.UUID(userID), uuid.UUID(shopID))
	if err != nil {
		return fmt.Errorf("bind shop: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bind shop: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1)`, uuid.UUID(userID),
		).Scan(&exists); err != nil {
			return fmt.Errorf("bind shop: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}
