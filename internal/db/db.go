package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"locationservice/internal/models"
	"locationservice/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevData inserts a demo owner with a small location hierarchy for
// development. Does nothing if the demo owner already exists.
func (d *DB) SeedDevData(ctx context.Context) error {
	if _, err := d.GetOwnerByCode(ctx, "demo"); err == nil {
		return nil
	}

	owner := &models.Owner{Code: "demo", Name: "Demo Library", LocatingStrategy: models.StrategyBasic}
	if err := d.UpsertOwner(ctx, owner); err != nil {
		return fmt.Errorf("failed to seed owner: %w", err)
	}

	library := &models.Location{Tier: models.TierLibrary, CallNo: "MAIN", Name: "Main Library", OwnerCode: owner.Code}
	if err := d.CreateLocation(ctx, library); err != nil {
		return fmt.Errorf("failed to seed library: %w", err)
	}

	collections := []struct {
		callNo         string
		name           string
		collectionCode string
		matchBeginning bool
		shelves        []string
	}{
		{"MAIN FIC", "Fiction", "FIC", false, []string{"MAIN FIC A-K", "MAIN FIC L-Z"}},
		{"MAIN 500", "Natural Sciences", "", false, []string{"MAIN 500 510", "MAIN 500 530"}},
		{"MAIN REF", "Reference", "REF", true, []string{"MAIN REF 0", "MAIN REF 9"}},
		{"MAIN CD", "Music", "CD", false, []string{"MAIN CD [A]-[M]", "MAIN CD [N]-[Z]"}},
	}

	for _, c := range collections {
		collection := &models.Location{
			Tier:           models.TierCollection,
			CallNo:         c.callNo,
			Name:           c.name,
			CollectionCode: c.collectionCode,
			MatchBeginning: c.matchBeginning,
			ParentID:       &library.ID,
			OwnerCode:      owner.Code,
		}
		if err := d.CreateLocation(ctx, collection); err != nil {
			return fmt.Errorf("failed to seed collection %s: %w", c.callNo, err)
		}
		for _, s := range c.shelves {
			shelf := &models.Location{
				Tier:           models.TierShelf,
				CallNo:         s,
				Name:           "Shelf " + s,
				Floor:          "1",
				CollectionCode: c.collectionCode,
				ParentID:       &collection.ID,
				OwnerCode:      owner.Code,
			}
			if err := d.CreateLocation(ctx, shelf); err != nil {
				return fmt.Errorf("failed to seed shelf %s: %w", s, err)
			}
		}
	}

	return nil
}
