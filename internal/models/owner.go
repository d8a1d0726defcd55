package models

import (
	"time"

	"github.com/google/uuid"
)

// Locating strategy constants
const (
	StrategyBasic  = "basic"  // Escalating word-window search
	StrategySimple = "simple" // Full scan of the owner's locations
)

// Owner is the organisation that locations, redirects and statistics are scoped to.
type Owner struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	LocatingStrategy string    `json:"locating_strategy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Strategy returns the owner's locating strategy, defaulting to basic.
func (o *Owner) Strategy() string {
	if o.LocatingStrategy == StrategySimple {
		return StrategySimple
	}
	return StrategyBasic
}
