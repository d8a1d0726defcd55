package models

import (
	"time"

	"github.com/google/uuid"
)

// RedirectKind selects when a call number rewrite is applied.
type RedirectKind string

// Redirect kind constants
const (
	RedirectPreprocessing RedirectKind = "preprocessing" // Before resolution
	RedirectNotFound      RedirectKind = "not_found"     // Once, after resolution found nothing
)

// Redirect is an owner-scoped call number rewrite rule.
// Condition is a regular expression; Operation is its replacement template.
type Redirect struct {
	ID        uuid.UUID    `json:"id"`
	OwnerCode string       `json:"owner"`
	Kind      RedirectKind `json:"kind"`
	Condition string       `json:"condition"`
	Operation string       `json:"operation"`
	IsActive  bool         `json:"is_active"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
