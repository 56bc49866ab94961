// Package memory keeps planar decks in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/randomtoy/planar-go/internal/domain"
	"github.com/randomtoy/planar-go/internal/ports"
)

// DeckStore is a concurrency-safe in-memory ports.DeckStore.
type DeckStore struct {
	mu    sync.RWMutex
	decks map[string]domain.Deck
}

func NewDeckStore() *DeckStore {
	return &DeckStore{decks: make(map[string]domain.Deck)}
}

func (s *DeckStore) Get(ctx context.Context, deckID string) (domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deck{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	deck, ok := s.decks[deckID]
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	return deck.Clone(), nil
}

func (s *DeckStore) Save(ctx context.Context, deck domain.Deck) (domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return domain.Deck{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !deck.HasID() {
		deck.ID = uuid.NewString()
		deck.Version = 0
	} else {
		stored, ok := s.decks[deck.ID]
		if !ok {
			return domain.Deck{}, domain.ErrDeckNotFound
		}
		if stored.Version != deck.Version {
			return domain.Deck{}, domain.ErrDeckConflict
		}
	}

	deck.Version++
	s.decks[deck.ID] = deck.Clone()
	return deck, nil
}

var _ ports.DeckStore = (*DeckStore)(nil)
