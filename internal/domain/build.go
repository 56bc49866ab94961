package domain

import (
	"fmt"
	"time"
)

// EffectiveSize adds one card to phenomena-free decks so that games last
// about as long as with phenomena mixed in.
func EffectiveSize(size int, includePhenomena bool) int {
	if includePhenomena {
		return size
	}
	return size + 1
}

// SampleCards picks count distinct cards from pool without replacement.
// Phenomena are filtered out unless includePhenomena is set; cards sharing an
// ID are considered once.
func SampleCards(pool []Card, count int, includePhenomena bool, rng RNG) ([]Card, error) {
	if count < 1 {
		return nil, ErrInvalidSize
	}

	candidates := make([]Card, 0, len(pool))
	seen := make(map[int64]struct{}, len(pool))
	for _, c := range pool {
		if !includePhenomena && c.Type.IsPhenomenon() {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		candidates = append(candidates, c)
	}
	if count > len(candidates) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCatalog, count, len(candidates))
	}

	// Fisher-Yates partial shuffle: only the first count slots are settled.
	for i := range count {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count:count], nil
}

// BuildDeck samples a new deck from pool. One sampled card is put in play,
// the rest are shuffled into the draw pile.
func BuildDeck(pool []Card, size int, includePhenomena bool, rng RNG, now time.Time) (Deck, error) {
	if size < 1 {
		return Deck{}, ErrInvalidSize
	}

	sampled, err := SampleCards(pool, EffectiveSize(size, includePhenomena), includePhenomena, rng)
	if err != nil {
		return Deck{}, err
	}

	i := rng.Intn(len(sampled))
	current := sampled[i]

	pile := make([]Card, 0, len(sampled)-1)
	pile = append(pile, sampled[:i]...)
	pile = append(pile, sampled[i+1:]...)
	shuffle(pile, rng)

	return Deck{
		Cards:     pile,
		Current:   current,
		StartTime: now,
	}, nil
}

func shuffle(cards []Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
