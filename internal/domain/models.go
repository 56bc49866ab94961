package domain

import (
	"fmt"
	"slices"
	"time"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// CardType is the printed type of a planar card.
type CardType string

const (
	TypePlane             CardType = "plane"
	TypePhenomenon        CardType = "phenomenon"
	TypeSpatialMerging    CardType = "spatial_merging"
	TypeInterplanarTunnel CardType = "interplanar_tunnel"
)

// ParseCardType rejects anything outside the known card types.
func ParseCardType(s string) (CardType, error) {
	switch t := CardType(s); t {
	case TypePlane, TypePhenomenon, TypeSpatialMerging, TypeInterplanarTunnel:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCardType, s)
	}
}

// IsPhenomenon reports whether the card is excluded from phenomena-free decks.
func (t CardType) IsPhenomenon() bool {
	return t != TypePlane
}

// Effect is the draw behaviour a card triggers once it becomes current.
type Effect int

const (
	EffectOrdinary Effect = iota
	EffectCompanion
	EffectMultiTarget
)

// Effect maps a card type onto its draw behaviour.
func (t CardType) Effect() Effect {
	switch t {
	case TypePlane, TypePhenomenon:
		return EffectOrdinary
	case TypeSpatialMerging:
		return EffectCompanion
	case TypeInterplanarTunnel:
		return EffectMultiTarget
	}
	panic(fmt.Sprintf("domain: unhandled card type %q", string(t)))
}

// Card is a single planar card. Cards compare by value.
type Card struct {
	ID   int64    `json:"multiverseId"`
	Name string   `json:"name"`
	Type CardType `json:"type"`
	Art  string   `json:"imageUri"`
}

// Deck is an in-progress planar deck.
//
// Cards is the draw pile; index 0 is revealed next. Current is never part of
// Cards. Companion is set only while a spatial merging is in force and
// Pending is non-empty only while an interplanar tunnel awaits a choice.
type Deck struct {
	ID        string
	Cards     []Card
	Current   Card
	Companion *Card
	Pending   []Card
	StartTime time.Time
	// Version is owned by the deck store and bumped on every save.
	Version int64
}

// HasID reports whether the deck has been persisted.
func (d Deck) HasID() bool { return d.ID != "" }

// Size counts the draw pile plus the card in play.
func (d Deck) Size() int { return len(d.Cards) + 1 }

// AwaitingChoice reports whether the next advance resolves a pending choice.
func (d Deck) AwaitingChoice() bool { return len(d.Pending) > 0 }

// Clone returns a deck that shares no memory with d.
func (d Deck) Clone() Deck {
	out := d
	out.Cards = slices.Clone(d.Cards)
	out.Pending = slices.Clone(d.Pending)
	if d.Companion != nil {
		c := *d.Companion
		out.Companion = &c
	}
	return out
}

// Selection is an optional card identifier picked by a player.
type Selection struct {
	ID  int64
	Set bool
}

// NoSelection is the zero Selection.
var NoSelection = Selection{}

// Select wraps a card identifier as a Selection.
func Select(id int64) Selection { return Selection{ID: id, Set: true} }

// SelectionPolicy decides how a missing or unmatched Selection resolves a
// pending choice.
type SelectionPolicy int

const (
	// SelectPermissive falls back to the first pending card.
	SelectPermissive SelectionPolicy = iota
	// SelectStrict fails with ErrInvalidSelection.
	SelectStrict
)

// ParseSelectionPolicy accepts "permissive" and "strict".
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "permissive", "":
		return SelectPermissive, nil
	case "strict":
		return SelectStrict, nil
	default:
		return 0, fmt.Errorf("unknown selection policy %q", s)
	}
}

func (p *SelectionPolicy) UnmarshalText(text []byte) error {
	v, err := ParseSelectionPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p SelectionPolicy) String() string {
	if p == SelectStrict {
		return "strict"
	}
	return "permissive"
}
