package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/planar-go/internal/adapters/catalog"
	"github.com/randomtoy/planar-go/internal/domain"
)

const validCatalog = `
[[card]]
id = 10
name = "Akoum"
type = "plane"
art = "planes/akoum.jpg"

[[card]]
id = 11
name = "Spatial Merging"
type = "spatial_merging"
`

func TestParse_Valid(t *testing.T) {
	cards, err := catalog.Parse(validCatalog)
	require.NoError(t, err)

	assert.Equal(t, []domain.Card{
		{ID: 10, Name: "Akoum", Type: domain.TypePlane, Art: "planes/akoum.jpg"},
		{ID: 11, Name: "Spatial Merging", Type: domain.TypeSpatialMerging},
	}, cards)
}

func TestParse_ReportsAllProblems(t *testing.T) {
	raw := `
[[card]]
id = 1
name = "Akoum"
type = "plane"

[[card]]
id = 1
name = "Naya"
type = "plane"

[[card]]
id = 2
name = "Vanguard"
type = "avatar"

[[card]]
id = 3
name = " "
type = "plane"
`
	_, err := catalog.Parse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownCardType)
	assert.Contains(t, err.Error(), `id 1 already used by "Akoum"`)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParse_BadTOML(t *testing.T) {
	_, err := catalog.Parse("[[card]\nid = ")
	assert.Error(t, err)
}

func TestEmbeddedStore_Cards(t *testing.T) {
	cards, err := catalog.NewEmbeddedStore().Cards(context.Background())
	require.NoError(t, err)

	var planes, tunnels, mergings int
	for _, c := range cards {
		switch c.Type {
		case domain.TypePlane:
			planes++
		case domain.TypeInterplanarTunnel:
			tunnels++
		case domain.TypeSpatialMerging:
			mergings++
		}
	}
	assert.Greater(t, planes, 50)
	assert.Equal(t, 1, tunnels)
	assert.Equal(t, 1, mergings)
}

func TestFileStore_Cards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planes.toml")
	require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o644))

	cards, err := catalog.NewFileStore(path).Cards(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestFileStore_Missing(t *testing.T) {
	_, err := catalog.NewFileStore(filepath.Join(t.TempDir(), "nope.toml")).Cards(context.Background())
	assert.Error(t, err)
}
