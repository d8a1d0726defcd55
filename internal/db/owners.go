package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"locationservice/internal/models"
)

// GetOwnerByCode retrieves an owner by its code.
func (d *DB) GetOwnerByCode(ctx context.Context, code string) (*models.Owner, error) {
	var o models.Owner
	err := d.Pool.QueryRow(ctx, `
		SELECT id, code, name, locating_strategy, created_at, updated_at
		FROM owners WHERE code = $1
	`, code).Scan(&o.ID, &o.Code, &o.Name, &o.LocatingStrategy, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OwnerExists reports whether an owner with the given code exists.
func (d *DB) OwnerExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM owners WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

// LocatingStrategy returns the owner's locating strategy. Unknown owners get
// an empty strategy so resolution proceeds and finds nothing.
func (d *DB) LocatingStrategy(ctx context.Context, owner string) (string, error) {
	o, err := d.GetOwnerByCode(ctx, owner)
	if errors.Is(err, ErrOwnerNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return o.Strategy(), nil
}

// UpsertOwner creates an owner or updates its name and strategy.
func (d *DB) UpsertOwner(ctx context.Context, o *models.Owner) error {
	if o.Code == "" {
		return ErrInvalidOwner
	}
	return d.Pool.QueryRow(ctx, `
		INSERT INTO owners (code, name, locating_strategy)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			locating_strategy = EXCLUDED.locating_strategy,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, o.Code, o.Name, o.Strategy()).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}
