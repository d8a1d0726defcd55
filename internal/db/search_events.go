package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"locationservice/internal/models"
)

// InsertSearchEvents writes a batch of search events with COPY.
func (d *DB) InsertSearchEvents(ctx context.Context, events []models.SearchEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	now := time.Now()
	n, err := d.Pool.CopyFrom(ctx,
		pgx.Identifier{"search_events"},
		[]string{"id", "call_number", "owner_code", "lang", "outcome", "tier", "ip_address", "processing_time_ms", "created_at"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			e := events[i]
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
			return []any{e.ID, e.CallNo, e.Owner, e.Lang, e.Outcome, string(e.Tier), e.IPAddress, e.ProcessingTimeMS, e.CreatedAt}, nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("failed to insert search events: %w", err)
	}
	return n, nil
}

// CountSearchEvents returns event counts grouped by owner and outcome.
func (d *DB) CountSearchEvents(ctx context.Context) ([]models.SearchEventCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT owner_code, outcome, COUNT(*)
		FROM search_events
		GROUP BY owner_code, outcome
		ORDER BY owner_code, outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count search events: %w", err)
	}
	defer rows.Close()

	var counts []models.SearchEventCount
	for rows.Next() {
		var c models.SearchEventCount
		if err := rows.Scan(&c.Owner, &c.Outcome, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
