// Package catalog loads planar cards from TOML catalog files.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/randomtoy/planar-go/internal/domain"
)

//go:embed data/planes.toml
var catalogFS embed.FS

const embeddedFile = "data/planes.toml"

type catalogFile struct {
	Cards []cardEntry `toml:"card"`
}

type cardEntry struct {
	ID   int64  `toml:"id"`
	Name string `toml:"name"`
	Type string `toml:"type"`
	Art  string `toml:"art"`
}

// Parse decodes a TOML catalog and checks every entry. All problems are
// reported together.
func Parse(raw string) ([]domain.Card, error) {
	var f catalogFile
	if _, err := toml.Decode(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return toCards(f.Cards)
}

func toCards(entries []cardEntry) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(entries))
	seen := make(map[int64]string, len(entries))
	var errs []error
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("card #%d: name is required", i+1))
			continue
		}
		if e.ID <= 0 {
			errs = append(errs, fmt.Errorf("card %q: id must be positive", name))
			continue
		}
		if prev, dup := seen[e.ID]; dup {
			errs = append(errs, fmt.Errorf("card %q: id %d already used by %q", name, e.ID, prev))
			continue
		}
		t, err := domain.ParseCardType(e.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("card %q: %w", name, err))
			continue
		}
		seen[e.ID] = name
		cards = append(cards, domain.Card{ID: e.ID, Name: name, Type: t, Art: e.Art})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cards, nil
}

// EmbeddedStore serves the catalog compiled into the binary.
type EmbeddedStore struct {
	once  sync.Once
	cards []domain.Card
	err   error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := catalogFS.ReadFile(embeddedFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	s.cards, s.err = Parse(string(raw))
}

func (s *EmbeddedStore) Cards(_ context.Context) ([]domain.Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}

// FileStore reads a catalog from disk on first use.
type FileStore struct {
	path  string
	once  sync.Once
	cards []domain.Card
	err   error
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) init() {
	var f catalogFile
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		s.err = fmt.Errorf("decode catalog %s: %w", s.path, err)
		return
	}
	s.cards, s.err = toCards(f.Cards)
}

func (s *FileStore) Cards(_ context.Context) ([]domain.Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}
