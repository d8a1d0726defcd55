package models

import (
	"time"

	"github.com/google/uuid"
)

// Search outcome constants
const (
	OutcomeResolved     = "resolved"
	OutcomeRedirected   = "redirected"
	OutcomeNotFound     = "not_found"
	OutcomeNotAvailable = "not_available"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// SearchEvent records a single locate request for statistics.
type SearchEvent struct {
	ID               uuid.UUID
	CallNo           string
	Owner            string
	Lang             string
	Outcome          string
	Tier             Tier
	IPAddress        string
	ProcessingTimeMS int64
	CreatedAt        time.Time
}

// SearchEventCount is a per-owner event count by outcome.
type SearchEventCount struct {
	Owner   string
	Outcome string
	Count   int64
}
