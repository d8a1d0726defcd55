package resolver

import (
	"context"

	"locationservice/internal/models"
)

// prober performs store calls for a single resolution and counts them.
// It is not safe for concurrent use; each Resolve call owns one.
type prober struct {
	lookup Lookup
	calls  int
}

// probe looks up one window in one tier and returns the first candidate that
// matches the full call number, or nil.
func (p *prober) probe(ctx context.Context, tier models.Tier, window, callNo, owner string) (*models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	p.calls++
	candidates, err := p.lookup.FindByCode(ctx, tier, window, owner)
	if err != nil {
		if isContextErr(err) {
			return nil, cancelled(err)
		}
		return nil, &LookupError{Tier: tier, Code: window, Err: err}
	}

	for i := range candidates {
		c := candidates[i]
		if c.OwnerCode != "" && c.OwnerCode != owner {
			continue
		}
		if !Match(c.CallNo, window, callNo, c.MatchBeginning) {
			continue
		}
		if c.Tier == "" {
			c.Tier = tier
		}
		return &c, nil
	}
	return nil, nil
}

// list loads every location of a tier for the owner.
func (p *prober) list(ctx context.Context, lister Lister, tier models.Tier, owner string) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	p.calls++
	locations, err := lister.ListByOwner(ctx, tier, owner)
	if err != nil {
		if isContextErr(err) {
			return nil, cancelled(err)
		}
		return nil, &LookupError{Tier: tier, Err: err}
	}
	return locations, nil
}

// children loads the locations directly below parent.
func (p *prober) children(ctx context.Context, lookup ChildLookup, parent models.Location, owner string) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	p.calls++
	locations, err := lookup.FindChildren(ctx, parent, owner)
	if err != nil {
		if isContextErr(err) {
			return nil, cancelled(err)
		}
		return nil, &LookupError{Tier: parent.Tier.Child(), Code: parent.CallNo, Err: err}
	}
	return locations, nil
}

// byCollection loads the locations of a tier carrying a collection code.
func (p *prober) byCollection(ctx context.Context, source CollectionSource, tier models.Tier, code, owner string) ([]models.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	p.calls++
	locations, err := source.FindByCollectionCode(ctx, tier, code, owner)
	if err != nil {
		if isContextErr(err) {
			return nil, cancelled(err)
		}
		return nil, &LookupError{Tier: tier, Code: code, Err: err}
	}
	for i := range locations {
		if locations[i].Tier == "" {
			locations[i].Tier = tier
		}
	}
	return locations, nil
}
