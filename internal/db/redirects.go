package db

import (
	"context"
	"fmt"

	"locationservice/internal/config"
	"locationservice/internal/models"
)

// Redirects returns the owner's active redirects of one kind in position order.
func (d *DB) Redirects(ctx context.Context, owner string, kind models.RedirectKind) ([]models.Redirect, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT r.id, o.code, r.kind, r.condition, r.operation, r.is_active, r.position, r.created_at, r.updated_at
		FROM redirects r
		JOIN owners o ON o.id = r.owner_id
		WHERE o.code = $1 AND r.kind = $2 AND r.is_active = TRUE
		ORDER BY r.position ASC, r.created_at ASC
	`, owner, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to load redirects: %w", err)
	}
	defer rows.Close()

	var redirects []models.Redirect
	for rows.Next() {
		var r models.Redirect
		var k string
		if err := rows.Scan(&r.ID, &r.OwnerCode, &k, &r.Condition, &r.Operation, &r.IsActive, &r.Position, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Kind = models.RedirectKind(k)
		redirects = append(redirects, r)
	}
	return redirects, rows.Err()
}

// SyncOwners upserts the owners declared in the YAML config and replaces
// their redirect rules. Owners and locations not in the file are untouched.
func (d *DB) SyncOwners(ctx context.Context, cfg *config.YAMLConfig) error {
	if cfg == nil {
		return nil
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, oc := range cfg.Owners {
		if oc.Code == "" {
			return ErrInvalidOwner
		}

		owner := models.Owner{Code: oc.Code, Name: oc.Name, LocatingStrategy: oc.LocatingStrategy}
		var ownerID string
		err := tx.QueryRow(ctx, `
			INSERT INTO owners (code, name, locating_strategy)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				locating_strategy = EXCLUDED.locating_strategy,
				updated_at = NOW()
			RETURNING id::text
		`, owner.Code, owner.Name, owner.Strategy()).Scan(&ownerID)
		if err != nil {
			return fmt.Errorf("failed to upsert owner %s: %w", oc.Code, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM redirects WHERE owner_id = $1`, ownerID); err != nil {
			return fmt.Errorf("failed to clear redirects for %s: %w", oc.Code, err)
		}

		rules := []struct {
			kind  models.RedirectKind
			rules []config.RedirectConfig
		}{
			{models.RedirectPreprocessing, oc.PreprocessingRedirects},
			{models.RedirectNotFound, oc.NotFoundRedirects},
		}
		for _, set := range rules {
			for i, rc := range set.rules {
				_, err := tx.Exec(ctx, `
					INSERT INTO redirects (owner_id, kind, condition, operation, is_active, position)
					VALUES ($1, $2, $3, $4, $5, $6)
					ON CONFLICT (owner_id, kind, condition) DO NOTHING
				`, ownerID, string(set.kind), rc.Condition, rc.Operation, rc.IsActive(), i)
				if err != nil {
					return fmt.Errorf("failed to insert redirect for %s: %w", oc.Code, err)
				}
			}
		}
	}

	return tx.Commit(ctx)
}
