package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/planar-go/internal/adapters/storage/memory"
	"github.com/randomtoy/planar-go/internal/domain"
)

func newDeck() domain.Deck {
	return domain.Deck{
		Current:   domain.Card{ID: 1, Name: "Akoum", Type: domain.TypePlane},
		Cards:     []domain.Card{{ID: 2, Name: "Naya", Type: domain.TypePlane}},
		StartTime: time.Unix(1700000000, 0),
	}
}

func TestSaveAssignsIDAndVersion(t *testing.T) {
	store := memory.NewDeckStore()

	saved, err := store.Save(context.Background(), newDeck())
	require.NoError(t, err)
	assert.True(t, saved.HasID())
	assert.EqualValues(t, 1, saved.Version)

	got, err := store.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestGetUnknown(t *testing.T) {
	_, err := memory.NewDeckStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	store := memory.NewDeckStore()
	saved, err := store.Save(context.Background(), newDeck())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), saved)
	require.NoError(t, err)
	assert.EqualValues(t, 2, first.Version)

	_, err = store.Save(context.Background(), saved)
	assert.ErrorIs(t, err, domain.ErrDeckConflict)
}

func TestSaveUnknownID(t *testing.T) {
	deck := newDeck()
	deck.ID = "nope"

	_, err := memory.NewDeckStore().Save(context.Background(), deck)
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	store := memory.NewDeckStore()
	saved, err := store.Save(context.Background(), newDeck())
	require.NoError(t, err)

	got, err := store.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	got.Cards[0].Name = "changed"

	again, err := store.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naya", again.Cards[0].Name)
}

func TestConcurrentAdvanceOnlyOneWins(t *testing.T) {
	store := memory.NewDeckStore()
	saved, err := store.Save(context.Background(), newDeck())
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := domain.Advance(saved, domain.NoSelection, domain.SelectPermissive)
			if err != nil {
				t.Errorf("advance: %v", err)
				return
			}
			_, err = store.Save(context.Background(), next)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domain.ErrDeckConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)
}
