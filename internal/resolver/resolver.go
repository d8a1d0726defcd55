// Package resolver turns a free-text call number into the most specific
// shelf, collection or library registered for an owner.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"locationservice/internal/models"
)

// Lookup finds locations of one tier whose stored code equals code,
// ignoring case, scoped to owner.
type Lookup interface {
	FindByCode(ctx context.Context, tier models.Tier, code, owner string) ([]models.Location, error)
}

// ChildLookup is implemented by stores that can list the locations directly
// below a collection or library. It enables match-beginning refinement.
type ChildLookup interface {
	FindChildren(ctx context.Context, parent models.Location, owner string) ([]models.Location, error)
}

// Lister is implemented by stores that support the simple locating strategy.
type Lister interface {
	ListByOwner(ctx context.Context, tier models.Tier, owner string) ([]models.Location, error)
}

// StrategySource reports an owner's locating strategy.
type StrategySource interface {
	LocatingStrategy(ctx context.Context, owner string) (string, error)
}

// RuleSource loads an owner's ordered redirects of one kind.
type RuleSource interface {
	Redirects(ctx context.Context, owner string, kind models.RedirectKind) ([]models.Redirect, error)
}

// Config holds resolver settings.
type Config struct {
	MaxWords  int          // Word-count ceiling, DefaultMaxWords when zero
	Collation language.Tag // Ordering of interval bounds, Finnish when unset
	Logger    *slog.Logger
}

// locator is one locating strategy.
type locator interface {
	locate(ctx context.Context, p *prober, callNo string, words []string, owner string) (*models.Location, string, error)
}

// Resolver resolves call numbers. It holds no per-request state and is safe
// for concurrent use as long as its store is.
type Resolver struct {
	lookup    Lookup
	rules     RuleSource
	steps     *StepParser
	collation language.Tag
	logger    *slog.Logger
}

// New creates a resolver over the given store. rules may be nil.
func New(lookup Lookup, rules RuleSource, cfg Config) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collation := cfg.Collation
	if collation == language.Und {
		collation = language.Finnish
	}
	return &Resolver{
		lookup:    lookup,
		rules:     rules,
		steps:     NewStepParser(cfg.MaxWords),
		collation: collation,
		logger:    logger,
	}
}

// MaxWords returns the word-count ceiling.
func (r *Resolver) MaxWords() int {
	return r.steps.MaxWords()
}

// Resolve finds the location for callNumber within owner.
//
// Preprocessing redirects run first. If nothing matches, the first
// applicable not-found redirect rewrites the call number and resolution is
// retried once. A NotFound result is returned with a nil error.
func (r *Resolver) Resolve(ctx context.Context, callNumber, owner string) (Result, error) {
	return r.ResolveInCollection(ctx, callNumber, owner, "")
}

// ResolveInCollection works like Resolve but first looks among the locations
// carrying collectionCode, which tells apart locations sharing a call number.
// When none of them matches, resolution continues as in Resolve. An empty
// collectionCode skips the collection checks.
func (r *Resolver) ResolveInCollection(ctx context.Context, callNumber, owner, collectionCode string) (Result, error) {
	words := Tokenize(callNumber)
	if len(words) == 0 {
		return Result{}, invalidInput("call number is empty")
	}
	if strings.TrimSpace(owner) == "" {
		return Result{}, invalidInput("owner is empty")
	}

	loc, err := r.locatorFor(ctx, owner)
	if err != nil {
		return Result{}, err
	}

	callNo := strings.Join(words, " ")
	preprocessed, ok, err := r.rewrite(ctx, owner, models.RedirectPreprocessing, callNo)
	if err != nil {
		return Result{}, err
	}
	if ok {
		words = Tokenize(preprocessed)
		if len(words) == 0 {
			return Result{}, invalidInput("preprocessing redirect produced an empty call number")
		}
		r.logger.Debug("preprocessing redirect", "owner", owner, "from", callNo, "to", strings.Join(words, " "))
		callNo = strings.Join(words, " ")
	}

	p := &prober{lookup: r.lookup}
	res := Result{Outcome: NotFound, Original: callNumber, CallNumber: callNo}

	var found *models.Location
	var window string
	if collectionCode != "" {
		found, window, err = r.locateInCollection(ctx, p, callNo, owner, collectionCode)
		if err != nil {
			return Result{}, err
		}
		if found == nil {
			r.logger.Debug("no location matches collection code", "owner", owner, "collection", collectionCode, "callno", callNo)
		}
	}
	if found == nil {
		found, window, err = r.run(ctx, loc, p, callNo, words, owner)
		if err != nil {
			return Result{}, err
		}
	}

	if found == nil {
		r.logger.Debug("no location matches call number", "owner", owner, "callno", callNo)
		rewritten, ok, err := r.rewrite(ctx, owner, models.RedirectNotFound, callNo)
		if err != nil {
			return Result{}, err
		}
		if retryWords := Tokenize(rewritten); ok && len(retryWords) > 0 {
			retry := strings.Join(retryWords, " ")
			r.logger.Debug("not found redirect", "owner", owner, "from", callNo, "to", retry)
			res.Redirected = true
			res.CallNumber = retry
			found, window, err = r.run(ctx, loc, p, retry, retryWords, owner)
			if err != nil {
				return Result{}, err
			}
		}
	}

	res.Lookups = p.calls
	if found != nil {
		res.Outcome = Resolved
		res.Location = found
		res.Window = window
		r.logger.Debug("call number resolved", "owner", owner, "callno", res.CallNumber, "tier", found.Tier, "window", window)
	}
	return res, nil
}

// run locates a call number and applies match-beginning refinement.
func (r *Resolver) run(ctx context.Context, loc locator, p *prober, callNo string, words []string, owner string) (*models.Location, string, error) {
	found, window, err := loc.locate(ctx, p, callNo, words, owner)
	if err != nil || found == nil {
		return nil, "", err
	}
	refined, err := r.refine(ctx, p, found, callNo, owner)
	if err != nil {
		return nil, "", err
	}
	return refined, window, nil
}

// refine replaces a match-beginning collection or library with its first
// child whose stored code is a prefix of the call number.
func (r *Resolver) refine(ctx context.Context, p *prober, loc *models.Location, callNo, owner string) (*models.Location, error) {
	if !loc.MatchBeginning || !loc.HasChildren() {
		return loc, nil
	}
	children, ok := r.lookup.(ChildLookup)
	if !ok {
		return loc, nil
	}

	list, err := p.children(ctx, children, *loc, owner)
	if err != nil {
		return nil, err
	}
	for i := range list {
		child := list[i]
		if child.OwnerCode != "" && child.OwnerCode != owner {
			continue
		}
		if MatchPrefix(child.CallNo, callNo) {
			if child.Tier == "" {
				child.Tier = loc.Tier.Child()
			}
			return &child, nil
		}
	}
	return loc, nil
}

func (r *Resolver) locatorFor(ctx context.Context, owner string) (locator, error) {
	source, ok := r.lookup.(StrategySource)
	if !ok {
		return r.steps, nil
	}
	strategy, err := source.LocatingStrategy(ctx, owner)
	if err != nil {
		return nil, storeErr(err, "load locating strategy")
	}

	switch strategy {
	case models.StrategyBasic, "":
		return r.steps, nil
	case models.StrategySimple:
		if lister, ok := r.lookup.(Lister); ok {
			return simpleParser{lister: lister}, nil
		}
		r.logger.Warn("store cannot list locations, using basic strategy", "owner", owner)
		return r.steps, nil
	default:
		r.logger.Warn("unknown locating strategy, using basic", "owner", owner, "strategy", strategy)
		return r.steps, nil
	}
}

func (r *Resolver) rewrite(ctx context.Context, owner string, kind models.RedirectKind, callNo string) (string, bool, error) {
	if r.rules == nil {
		return callNo, false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, cancelled(err)
	}
	redirects, err := r.rules.Redirects(ctx, owner, kind)
	if err != nil {
		return "", false, storeErr(err, "load "+string(kind)+" redirects")
	}
	out, ok := ApplyFirst(CompileRedirects(redirects, r.logger), callNo)
	return out, ok, nil
}
