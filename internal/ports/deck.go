package ports

import (
	"context"

	"github.com/randomtoy/planar-go/internal/domain"
)

// DeckStore persists planar decks by id.
type DeckStore interface {
	// Get returns domain.ErrDeckNotFound for unknown ids.
	Get(ctx context.Context, deckID string) (domain.Deck, error)
	// Save assigns an id to new decks and bumps Version. It returns
	// domain.ErrDeckConflict if the stored version moved since deck was read.
	Save(ctx context.Context, deck domain.Deck) (domain.Deck, error)
}
