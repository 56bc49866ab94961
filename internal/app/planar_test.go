package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/planar-go/internal/app"
	"github.com/randomtoy/planar-go/internal/domain"
)

type mockCatalog struct {
	cards []domain.Card
	err   error
}

func (m *mockCatalog) Cards(_ context.Context) ([]domain.Card, error) {
	return m.cards, m.err
}

type mockDeckStore struct {
	decks   map[string]domain.Deck
	saved   []domain.Deck
	saveErr error
}

func newMockDeckStore() *mockDeckStore {
	return &mockDeckStore{decks: map[string]domain.Deck{}}
}

func (m *mockDeckStore) Get(_ context.Context, id string) (domain.Deck, error) {
	d, ok := m.decks[id]
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	return d, nil
}

func (m *mockDeckStore) Save(_ context.Context, d domain.Deck) (domain.Deck, error) {
	if m.saveErr != nil {
		return domain.Deck{}, m.saveErr
	}
	if !d.HasID() {
		d.ID = "TEST"
	}
	d.Version++
	m.decks[d.ID] = d
	m.saved = append(m.saved, d)
	return d, nil
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

func testCatalog() *mockCatalog {
	cards := make([]domain.Card, 0, 12)
	for i := range 10 {
		cards = append(cards, domain.Card{ID: int64(100 + i), Name: "Plane " + string(rune('A'+i)), Type: domain.TypePlane})
	}
	cards = append(cards,
		domain.Card{ID: 200, Name: "Spatial Merging", Type: domain.TypeSpatialMerging},
		domain.Card{ID: 201, Name: "Interplanar Tunnel", Type: domain.TypeInterplanarTunnel},
	)
	return &mockCatalog{cards: cards}
}

func newService(cat *mockCatalog, store *mockDeckStore, policy domain.SelectionPolicy) *app.PlanarService {
	return app.NewPlanarService(cat, store, fixedRNG{val: 0}, policy, slog.Default())
}

func TestGenerate_Success(t *testing.T) {
	store := newMockDeckStore()
	svc := newService(testCatalog(), store, domain.SelectPermissive)

	deck, err := svc.Generate(context.Background(), 5, true)
	require.NoError(t, err)

	assert.Equal(t, "TEST", deck.ID)
	assert.Equal(t, 5, deck.Size())
	assert.EqualValues(t, 1, deck.Version)
	require.Len(t, store.saved, 1)
}

func TestGenerate_WithoutPhenomena(t *testing.T) {
	svc := newService(testCatalog(), newMockDeckStore(), domain.SelectPermissive)

	deck, err := svc.Generate(context.Background(), 5, false)
	require.NoError(t, err)

	assert.Equal(t, 6, deck.Size())
}

func TestGenerate_CatalogFailure(t *testing.T) {
	cat := &mockCatalog{err: domain.ErrCatalogUnavailable}
	svc := newService(cat, newMockDeckStore(), domain.SelectPermissive)

	_, err := svc.Generate(context.Background(), 5, true)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestGenerate_InsufficientCatalog(t *testing.T) {
	store := newMockDeckStore()
	svc := newService(testCatalog(), store, domain.SelectPermissive)

	_, err := svc.Generate(context.Background(), 11, false)
	assert.ErrorIs(t, err, domain.ErrInsufficientCatalog)
	assert.Empty(t, store.saved)
}

func TestGet_NotFound(t *testing.T) {
	svc := newService(testCatalog(), newMockDeckStore(), domain.SelectPermissive)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrDeckNotFound))
}

func TestNext_AdvancesAndSaves(t *testing.T) {
	store := newMockDeckStore()
	store.decks["TEST"] = domain.Deck{
		ID:      "TEST",
		Current: domain.Card{ID: 1, Type: domain.TypePlane},
		Cards: []domain.Card{
			{ID: 2, Type: domain.TypePlane},
			{ID: 3, Type: domain.TypePlane},
		},
		Version: 4,
	}
	svc := newService(testCatalog(), store, domain.SelectPermissive)

	deck, err := svc.Next(context.Background(), "TEST", domain.NoSelection)
	require.NoError(t, err)

	assert.EqualValues(t, 2, deck.Current.ID)
	assert.Equal(t, 2, deck.Size())
	assert.EqualValues(t, 5, store.decks["TEST"].Version)
}

func TestNext_StrictPolicyRejectsMissingSelection(t *testing.T) {
	store := newMockDeckStore()
	store.decks["TEST"] = domain.Deck{
		ID:      "TEST",
		Current: domain.Card{ID: 201, Type: domain.TypeInterplanarTunnel},
		Pending: []domain.Card{{ID: 2, Type: domain.TypePlane}, {ID: 3, Type: domain.TypePlane}},
	}
	svc := newService(testCatalog(), store, domain.SelectStrict)

	_, err := svc.Next(context.Background(), "TEST", domain.NoSelection)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Empty(t, store.saved)

	deck, err := svc.Next(context.Background(), "TEST", domain.Select(3))
	require.NoError(t, err)
	assert.EqualValues(t, 3, deck.Current.ID)
}

func TestNext_EmptyDeck(t *testing.T) {
	store := newMockDeckStore()
	store.decks["TEST"] = domain.Deck{ID: "TEST", Current: domain.Card{ID: 1}}
	svc := newService(testCatalog(), store, domain.SelectPermissive)

	_, err := svc.Next(context.Background(), "TEST", domain.NoSelection)
	assert.ErrorIs(t, err, domain.ErrEmptyDeck)
}

func TestNext_SaveConflict(t *testing.T) {
	store := newMockDeckStore()
	store.decks["TEST"] = domain.Deck{
		ID:      "TEST",
		Current: domain.Card{ID: 1, Type: domain.TypePlane},
		Cards:   []domain.Card{{ID: 2, Type: domain.TypePlane}},
	}
	store.saveErr = domain.ErrDeckConflict
	svc := newService(testCatalog(), store, domain.SelectPermissive)

	_, err := svc.Next(context.Background(), "TEST", domain.NoSelection)
	assert.ErrorIs(t, err, domain.ErrDeckConflict)
}
