package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"locationservice/internal/models"
)

const locationColumns = `
	l.id, l.tier, l.call_number, l.name, l.floor, l.description,
	l.collection_code, l.match_beginning, l.parent_id, o.code,
	l.created_at, l.updated_at
`

func scanLocation(row pgx.Row) (models.Location, error) {
	var l models.Location
	var tier string
	err := row.Scan(
		&l.ID, &tier, &l.CallNo, &l.Name, &l.Floor, &l.Description,
		&l.CollectionCode, &l.MatchBeginning, &l.ParentID, &l.OwnerCode,
		&l.CreatedAt, &l.UpdatedAt,
	)
	l.Tier = models.Tier(tier)
	return l, err
}

func collectLocations(rows pgx.Rows) ([]models.Location, error) {
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// FindByCode returns the owner's locations of one tier whose call number
// equals code, ignoring case.
func (d *DB) FindByCode(ctx context.Context, tier models.Tier, code, owner string) ([]models.Location, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations l
		JOIN owners o ON o.id = l.owner_id
		WHERE o.code = $1 AND l.tier = $2 AND lower(l.call_number) = lower($3)
		ORDER BY l.created_at ASC, l.id ASC
	`, owner, string(tier), code)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by code: %w", tier, err)
	}
	return collectLocations(rows)
}

// FindByCollectionCode returns the owner's locations of one tier carrying the
// collection code, in call number order.
func (d *DB) FindByCollectionCode(ctx context.Context, tier models.Tier, collectionCode, owner string) ([]models.Location, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations l
		JOIN owners o ON o.id = l.owner_id
		WHERE o.code = $1 AND l.tier = $2 AND l.collection_code = $3
		ORDER BY l.call_number ASC, l.id ASC
	`, owner, string(tier), collectionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by collection code: %w", tier, err)
	}
	return collectLocations(rows)
}

// FindChildren returns the locations directly below parent, in call number order.
func (d *DB) FindChildren(ctx context.Context, parent models.Location, owner string) ([]models.Location, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations l
		JOIN owners o ON o.id = l.owner_id
		WHERE o.code = $1 AND l.parent_id = $2
		ORDER BY l.call_number ASC, l.id ASC
	`, owner, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find children: %w", err)
	}
	return collectLocations(rows)
}

// ListByOwner returns every location of one tier for the owner.
func (d *DB) ListByOwner(ctx context.Context, tier models.Tier, owner string) ([]models.Location, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+locationColumns+`
		FROM locations l
		JOIN owners o ON o.id = l.owner_id
		WHERE o.code = $1 AND l.tier = $2
		ORDER BY l.call_number DESC
	`, owner, string(tier))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s locations: %w", tier, err)
	}
	return collectLocations(rows)
}

// GetLocationByID retrieves a location by ID, scoped to the owner.
func (d *DB) GetLocationByID(ctx context.Context, id uuid.UUID, owner string) (*models.Location, error) {
	row := d.Pool.QueryRow(ctx, `
		SELECT `+locationColumns+`
		FROM locations l
		JOIN owners o ON o.id = l.owner_id
		WHERE l.id = $1 AND o.code = $2
	`, id, owner)

	l, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// CreateLocation inserts a location under its owner.
func (d *DB) CreateLocation(ctx context.Context, l *models.Location) error {
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO locations (owner_id, tier, parent_id, call_number, name, floor, description, collection_code, match_beginning)
		SELECT o.id, $2, $3, $4, $5, $6, $7, $8, $9
		FROM owners o WHERE o.code = $1
		RETURNING id, created_at, updated_at
	`, l.OwnerCode, string(l.Tier), l.ParentID, l.CallNo, l.Name, l.Floor, l.Description, l.CollectionCode, l.MatchBeginning,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOwnerNotFound
	}
	return err
}
