// Package sqlite provides a SQLite-backed deck store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/randomtoy/planar-go/internal/adapters/storage/sqlite/migrations"
	"github.com/randomtoy/planar-go/internal/domain"
	"github.com/randomtoy/planar-go/internal/ports"
)

// Store persists decks in SQLite. The mutable part of a deck is kept as a
// JSON document next to its version counter.
type Store struct {
	sqlDB *sql.DB
}

type deckState struct {
	Cards     []domain.Card `json:"cards"`
	Current   domain.Card   `json:"current"`
	Companion *domain.Card  `json:"companion,omitempty"`
	Pending   []domain.Card `json:"pending,omitempty"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite deck store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, deckID string) (domain.Deck, error) {
	var (
		state     string
		startTime int64
		version   int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT state, start_time, version FROM decks WHERE id = ?`, deckID,
	).Scan(&state, &startTime, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	if err != nil {
		return domain.Deck{}, fmt.Errorf("get deck: %w", err)
	}

	var st deckState
	if err := json.Unmarshal([]byte(state), &st); err != nil {
		return domain.Deck{}, fmt.Errorf("decode deck %s: %w", deckID, err)
	}
	return domain.Deck{
		ID:        deckID,
		Cards:     st.Cards,
		Current:   st.Current,
		Companion: st.Companion,
		Pending:   st.Pending,
		StartTime: fromMillis(startTime),
		Version:   version,
	}, nil
}

func (s *Store) Save(ctx context.Context, deck domain.Deck) (domain.Deck, error) {
	state, err := json.Marshal(deckState{
		Cards:     deck.Cards,
		Current:   deck.Current,
		Companion: deck.Companion,
		Pending:   deck.Pending,
	})
	if err != nil {
		return domain.Deck{}, fmt.Errorf("encode deck: %w", err)
	}
	now := toMillis(time.Now())

	if !deck.HasID() {
		deck.ID = uuid.NewString()
		deck.Version = 1
		_, err := s.sqlDB.ExecContext(ctx,
			`INSERT INTO decks (id, state, start_time, version, updated_at) VALUES (?, ?, ?, ?, ?)`,
			deck.ID, string(state), toMillis(deck.StartTime), deck.Version, now,
		)
		if err != nil {
			return domain.Deck{}, fmt.Errorf("insert deck: %w", err)
		}
		return deck, nil
	}

	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE decks SET state = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		string(state), now, deck.ID, deck.Version,
	)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("update deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Deck{}, fmt.Errorf("update deck: %w", err)
	}
	if n == 0 {
		if _, err := s.Get(ctx, deck.ID); err != nil {
			return domain.Deck{}, err
		}
		return domain.Deck{}, domain.ErrDeckConflict
	}
	deck.Version++
	return deck, nil
}

var _ ports.DeckStore = (*Store)(nil)
