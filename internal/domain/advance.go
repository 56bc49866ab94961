package domain

import (
	"fmt"
	"slices"
)

// TunnelChoices is the number of cards an interplanar tunnel offers.
const TunnelChoices = 2

// Advance moves deck forward by one draw and returns the resulting deck.
// The slices of the input deck are left untouched.
//
// While a choice is pending, the selected card (resolved per policy) becomes
// current and the others go back on top of the draw pile in their original
// order. The chosen card's own effect is not applied. Otherwise the top card
// of the pile becomes current and its effect is applied.
func Advance(deck Deck, sel Selection, policy SelectionPolicy) (Deck, error) {
	if deck.AwaitingChoice() {
		return resolveChoice(deck, sel, policy)
	}
	return draw(deck)
}

func resolveChoice(deck Deck, sel Selection, policy SelectionPolicy) (Deck, error) {
	idx := pendingIndex(deck.Pending, sel)
	if idx < 0 {
		if policy == SelectStrict {
			if !sel.Set {
				return Deck{}, fmt.Errorf("%w: a selection is required", ErrInvalidSelection)
			}
			return Deck{}, fmt.Errorf("%w: %d", ErrInvalidSelection, sel.ID)
		}
		idx = 0
	}

	pile := make([]Card, 0, len(deck.Pending)-1+len(deck.Cards))
	for i, c := range deck.Pending {
		if i != idx {
			pile = append(pile, c)
		}
	}
	pile = append(pile, deck.Cards...)

	next := deck
	next.Current = deck.Pending[idx]
	next.Companion = nil
	next.Pending = nil
	next.Cards = pile
	return next, nil
}

func pendingIndex(pending []Card, sel Selection) int {
	if !sel.Set {
		return -1
	}
	return slices.IndexFunc(pending, func(c Card) bool { return c.ID == sel.ID })
}

func draw(deck Deck) (Deck, error) {
	if len(deck.Cards) == 0 {
		return Deck{}, ErrEmptyDeck
	}

	pile := slices.Clone(deck.Cards)
	next := deck
	next.Current, pile = pile[0], pile[1:]
	next.Companion = nil
	next.Pending = nil

	switch next.Current.Type.Effect() {
	case EffectOrdinary:
	case EffectCompanion:
		if len(pile) > 0 {
			companion := pile[0]
			next.Companion = &companion
			pile = pile[1:]
		}
	case EffectMultiTarget:
		n := min(TunnelChoices, len(pile))
		next.Pending = slices.Clone(pile[:n])
		pile = pile[n:]
	}

	next.Cards = pile
	return next, nil
}
