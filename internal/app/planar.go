package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomtoy/planar-go/internal/domain"
	"github.com/randomtoy/planar-go/internal/ports"
)

// PlanarService builds planar decks from the catalog and plays them forward.
type PlanarService struct {
	catalog ports.CardCatalog
	store   ports.DeckStore
	rng     domain.RNG
	policy  domain.SelectionPolicy
	logger  *slog.Logger
	now     func() time.Time
}

func NewPlanarService(catalog ports.CardCatalog, store ports.DeckStore, rng domain.RNG, policy domain.SelectionPolicy, logger *slog.Logger) *PlanarService {
	return &PlanarService{
		catalog: catalog,
		store:   store,
		rng:     rng,
		policy:  policy,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate builds and stores a new deck.
func (s *PlanarService) Generate(ctx context.Context, size int, includePhenomena bool) (domain.Deck, error) {
	pool, err := s.catalog.Cards(ctx)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("load catalog: %w", err)
	}

	deck, err := domain.BuildDeck(pool, size, includePhenomena, s.rng, s.now())
	if err != nil {
		return domain.Deck{}, fmt.Errorf("build deck: %w", err)
	}

	saved, err := s.store.Save(ctx, deck)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("save deck: %w", err)
	}

	s.logger.DebugContext(ctx, "deck generated",
		"deck_id", saved.ID,
		"size", saved.Size(),
		"phenomena", includePhenomena,
		"current", saved.Current.Name,
	)
	return saved, nil
}

// Get returns the stored deck.
func (s *PlanarService) Get(ctx context.Context, deckID string) (domain.Deck, error) {
	deck, err := s.store.Get(ctx, deckID)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("get deck: %w", err)
	}
	return deck, nil
}

// Next advances the stored deck by one draw and stores the result.
func (s *PlanarService) Next(ctx context.Context, deckID string, sel domain.Selection) (domain.Deck, error) {
	deck, err := s.store.Get(ctx, deckID)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("get deck: %w", err)
	}

	next, err := domain.Advance(deck, sel, s.policy)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("advance deck %s: %w", deckID, err)
	}

	saved, err := s.store.Save(ctx, next)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("save deck: %w", err)
	}

	s.logger.DebugContext(ctx, "deck advanced",
		"deck_id", saved.ID,
		"current", saved.Current.Name,
		"remaining", len(saved.Cards),
		"pending", len(saved.Pending),
	)
	return saved, nil
}
