package resolver

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/collate"

	"locationservice/internal/models"
)

// CollectionSource is implemented by stores that can list an owner's
// locations of one tier carrying a collection code. It enables resolution
// within a collection given by the client.
type CollectionSource interface {
	FindByCollectionCode(ctx context.Context, tier models.Tier, collectionCode, owner string) ([]models.Location, error)
}

// intervalPattern marks a stored code that covers a range of call numbers,
// e.g. "MAIN FIC [A]-[K]".
var intervalPattern = regexp.MustCompile(`\[(.+)\]-\[(.+)\]`)

// locateInCollection resolves a call number among the locations carrying a
// collection code. Checks run in order:
//  1. a match-beginning collection or library with the code, refined to a child
//  2. a shelf with the code that is a word prefix of the call number or whose
//     interval contains it
//  3. a collection with the code, matched the same way
//
// A nil location means the caller continues with the owner's strategy.
func (r *Resolver) locateInCollection(ctx context.Context, p *prober, callNo, owner, code string) (*models.Location, string, error) {
	source, ok := r.lookup.(CollectionSource)
	if !ok {
		return nil, "", nil
	}

	collections, err := p.byCollection(ctx, source, models.TierCollection, code, owner)
	if err != nil {
		return nil, "", err
	}
	libraries, err := p.byCollection(ctx, source, models.TierLibrary, code, owner)
	if err != nil {
		return nil, "", err
	}

	for _, group := range [][]models.Location{collections, libraries} {
		for i := range group {
			l := group[i]
			if !l.MatchBeginning || !inCollection(l, owner, code) {
				continue
			}
			refined, err := r.refine(ctx, p, &l, callNo, owner)
			if err != nil {
				return nil, "", err
			}
			return refined, l.CallNo, nil
		}
	}

	shelves, err := p.byCollection(ctx, source, models.TierShelf, code, owner)
	if err != nil {
		return nil, "", err
	}

	coll := collate.New(r.collation, collate.Loose)
	for _, group := range [][]models.Location{shelves, collections} {
		for i := range group {
			l := group[i]
			if !inCollection(l, owner, code) || l.CallNo == "" {
				continue
			}
			if hasWordPrefix(callNo, l.CallNo) || matchInterval(coll, l.CallNo, callNo) {
				return &l, l.CallNo, nil
			}
		}
	}
	return nil, "", nil
}

func inCollection(l models.Location, owner, code string) bool {
	if l.OwnerCode != "" && l.OwnerCode != owner {
		return false
	}
	return l.CollectionCode != "" && l.CollectionCode == code
}

// matchInterval reports whether callNo falls inside the interval of a stored
// code such as "MAIN FIC [A]-[K]". The part before the brackets must be a word
// prefix of callNo. callNo is then cut to the length of each bound and
// compared with the collator, so "MAIN FIC Bell" lies between "MAIN FIC A"
// and "MAIN FIC K".
func matchInterval(coll *collate.Collator, storedCode, callNo string) bool {
	m := intervalPattern.FindStringSubmatchIndex(storedCode)
	if m == nil {
		return false
	}
	base := intervalPattern.ReplaceAllString(storedCode, "")
	if !hasWordPrefix(callNo, strings.TrimSpace(base)) {
		return false
	}

	start := []rune(base + storedCode[m[2]:m[3]])
	end := []rune(base + storedCode[m[4]:m[5]])
	input := []rune(callNo)

	low := input
	if len(low) > len(start) {
		low = low[:len(start)]
	}
	if coll.CompareString(string(low), string(start)) < 0 {
		return false
	}

	if len(end) > len(input) {
		end = end[:len(input)]
	}
	return coll.CompareString(string(input[:len(end)]), string(end)) <= 0
}
