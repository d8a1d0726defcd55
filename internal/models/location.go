package models

import (
	"time"

	"github.com/google/uuid"
)

// Tier is one of the three nested location granularities.
type Tier string

// Tier constants, most specific first.
const (
	TierShelf      Tier = "shelf"
	TierCollection Tier = "collection"
	TierLibrary    Tier = "library"
)

// TierOrder is the fixed probing order used at every window.
var TierOrder = []Tier{TierShelf, TierCollection, TierLibrary}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierShelf, TierCollection, TierLibrary:
		return true
	}
	return false
}

// Child returns the tier directly below t, or "" for shelves.
func (t Tier) Child() Tier {
	switch t {
	case TierLibrary:
		return TierCollection
	case TierCollection:
		return TierShelf
	}
	return ""
}

// Location is a library, collection or shelf registered under an owner.
type Location struct {
	ID             uuid.UUID  `json:"id" xml:"id"`
	Tier           Tier       `json:"tier" xml:"tier"`
	CallNo         string     `json:"call_number" xml:"callNumber"` // Stored location code, compared case-insensitively
	Name           string     `json:"name" xml:"name"`
	Floor          string     `json:"floor,omitempty" xml:"floor,omitempty"`
	Description    string     `json:"description,omitempty" xml:"description,omitempty"`
	CollectionCode string     `json:"collection_code,omitempty" xml:"collectionCode,omitempty"`
	MatchBeginning bool       `json:"match_beginning" xml:"matchBeginning"` // Match stored code as a prefix of the whole call number
	ParentID       *uuid.UUID `json:"parent_id,omitempty" xml:"parentId,omitempty"`
	OwnerCode      string     `json:"owner" xml:"owner"`
	CreatedAt      time.Time  `json:"created_at" xml:"-"`
	UpdatedAt      time.Time  `json:"updated_at" xml:"-"`
}

// IsShelf returns true if the location is a shelf.
func (l *Location) IsShelf() bool {
	return l.Tier == TierShelf
}

// HasChildren returns true if locations of a lower tier can belong to this one.
func (l *Location) HasChildren() bool {
	return l.Tier.Child() != ""
}
