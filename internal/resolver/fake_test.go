package resolver

import (
	"context"
	"strings"

	"locationservice/internal/models"
)

type lookupCall struct {
	Tier models.Tier
	Code string
}

// fakeStore is an in-memory store that records every Lookup call.
type fakeStore struct {
	locations   []models.Location
	children    map[string][]models.Location // parent call number -> children
	redirects   map[models.RedirectKind][]models.Redirect
	strategy    string
	ignoreOwner bool
	err         error
	childErr    error
	cancel      context.CancelFunc // cancels after the first FindByCode call
	calls       []lookupCall
}

func (f *fakeStore) FindByCode(_ context.Context, tier models.Tier, code, owner string) ([]models.Location, error) {
	f.calls = append(f.calls, lookupCall{Tier: tier, Code: code})
	if f.cancel != nil {
		f.cancel()
	}
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Location
	for _, l := range f.locations {
		if l.Tier != tier || !strings.EqualFold(l.CallNo, code) {
			continue
		}
		if !f.ignoreOwner && l.OwnerCode != owner {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeStore) FindChildren(_ context.Context, parent models.Location, owner string) ([]models.Location, error) {
	if f.childErr != nil {
		return nil, f.childErr
	}
	var out []models.Location
	for _, l := range f.children[parent.CallNo] {
		if l.OwnerCode == owner {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, tier models.Tier, owner string) ([]models.Location, error) {
	f.calls = append(f.calls, lookupCall{Tier: tier})
	var out []models.Location
	for _, l := range f.locations {
		if l.Tier == tier && l.OwnerCode == owner {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByCollectionCode(_ context.Context, tier models.Tier, collectionCode, owner string) ([]models.Location, error) {
	f.calls = append(f.calls, lookupCall{Tier: tier, Code: collectionCode})
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Location
	for _, l := range f.locations {
		if l.Tier == tier && l.CollectionCode == collectionCode && (f.ignoreOwner || l.OwnerCode == owner) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) LocatingStrategy(_ context.Context, _ string) (string, error) {
	return f.strategy, nil
}

func (f *fakeStore) Redirects(_ context.Context, owner string, kind models.RedirectKind) ([]models.Redirect, error) {
	var out []models.Redirect
	for _, r := range f.redirects[kind] {
		if r.OwnerCode == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func loc(tier models.Tier, callNo, owner string) models.Location {
	return models.Location{Tier: tier, CallNo: callNo, Name: string(tier) + " " + callNo, OwnerCode: owner}
}
