package resolver

import "locationservice/internal/models"

// Outcome is the terminal state of a successful resolution.
type Outcome int

const (
	NotFound Outcome = iota
	Resolved
)

func (o Outcome) String() string {
	if o == Resolved {
		return "resolved"
	}
	return "not_found"
}

// Result is the outcome of resolving one call number. Location is set only
// when Outcome is Resolved.
type Result struct {
	Outcome    Outcome
	Location   *models.Location
	Original   string // Call number as received
	CallNumber string // Call number that was resolved, after rewrites
	Window     string // Window that produced the match
	Redirected bool   // A not-found redirect was applied
	Lookups    int    // Store calls made
}

// Found returns true if a location was resolved.
func (r Result) Found() bool {
	return r.Outcome == Resolved && r.Location != nil
}

// Tier returns the tier of the resolved location, or "" when not found.
func (r Result) Tier() models.Tier {
	if !r.Found() {
		return ""
	}
	return r.Location.Tier
}
