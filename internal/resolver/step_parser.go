package resolver

import (
	"context"

	"locationservice/internal/models"
)

// DefaultMaxWords is the default word-count ceiling.
const DefaultMaxWords = 10

// level is the probe plan for call numbers of exactly limit words.
type level struct {
	limit int
	plan  []Window
}

// newLevel builds the probe order for one level: window lengths from limit
// down to 2, each left to right, then single words from the last one back to
// the first.
func newLevel(limit int) level {
	var plan []Window
	for length := limit; length >= 2; length-- {
		plan = append(plan, windowSpans(limit, length)...)
	}
	plan = append(plan, tailSpans(limit)...)
	return level{limit: limit, plan: plan}
}

// StepParser resolves call numbers by escalating word windows. Levels are
// built once for every word count from 1 to the ceiling and picked by index.
type StepParser struct {
	levels []level
}

// NewStepParser builds the levels up to maxWords. A non-positive value uses
// DefaultMaxWords.
func NewStepParser(maxWords int) *StepParser {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	levels := make([]level, maxWords)
	for i := range levels {
		levels[i] = newLevel(i + 1)
	}
	return &StepParser{levels: levels}
}

// MaxWords returns the word-count ceiling.
func (s *StepParser) MaxWords() int {
	return len(s.levels)
}

// Plan returns the probe order used for call numbers of n words, or nil when
// n is outside 1..MaxWords.
func (s *StepParser) Plan(n int) []Window {
	lvl, ok := s.levelFor(n)
	if !ok {
		return nil
	}
	return append([]Window(nil), lvl.plan...)
}

func (s *StepParser) levelFor(n int) (level, bool) {
	if n < 1 || n > len(s.levels) {
		return level{}, false
	}
	return s.levels[n-1], true
}

func (s *StepParser) locate(ctx context.Context, p *prober, callNo string, words []string, owner string) (*models.Location, string, error) {
	lvl, ok := s.levelFor(len(words))
	if !ok {
		return nil, "", nil
	}

	for _, tier := range models.TierOrder {
		for _, w := range lvl.plan {
			window := w.Text(words)
			loc, err := p.probe(ctx, tier, window, callNo, owner)
			if err != nil {
				return nil, "", err
			}
			if loc != nil {
				return loc, window, nil
			}
		}
	}
	return nil, "", nil
}
