package resolver

import (
	"context"
	"sort"

	"locationservice/internal/models"
)

// simpleParser scans all of an owner's locations per tier in descending code
// order, so a longer code sorts before its own prefixes, and returns the first
// one that is a word prefix of the call number.
type simpleParser struct {
	lister Lister
}

func (s simpleParser) locate(ctx context.Context, p *prober, callNo string, _ []string, owner string) (*models.Location, string, error) {
	for _, tier := range models.TierOrder {
		locations, err := p.list(ctx, s.lister, tier, owner)
		if err != nil {
			return nil, "", err
		}

		sort.SliceStable(locations, func(i, j int) bool {
			return locations[i].CallNo > locations[j].CallNo
		})

		for i := range locations {
			loc := locations[i]
			if loc.OwnerCode != "" && loc.OwnerCode != owner {
				continue
			}
			if loc.CallNo != "" && hasWordPrefix(callNo, loc.CallNo) {
				if loc.Tier == "" {
					loc.Tier = tier
				}
				return &loc, loc.CallNo, nil
			}
		}
	}
	return nil, "", nil
}
