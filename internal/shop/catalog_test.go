package shop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"id": 1, "name": "Keyboard", "price": 49.90},
		{"id": 2, "name": "Mouse", "price": "19.90"}
	]`)

	cat, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)

	products, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.EqualValues(t, 1, products[0].ID)
	require.EqualValues(t, 2, products[1].ID)

	p, ok, err := cat.Find(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Mouse", p.Name)
}

func TestLoadCatalog_SkipsInvalidEntries(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"id": 1, "name": "Keyboard", "price": 49.90},
		{"id": 0, "name": "NoID", "price": 5},
		{"id": 2, "name": "", "price": 5},
		{"id": 3, "name": "Free", "price": 0},
		{"id": 4, "name": "BadPrice", "price": "not-a-number"}
	]`)

	cat, err := LoadCatalog(path, zap.NewNop())
	require.NoError(t, err)

	products, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.EqualValues(t, 1, products[0].ID)
}

func TestLoadCatalog_FailsOnMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	require.Error(t, err)
}

func TestLoadCatalog_FailsWhenNothingValid(t *testing.T) {
	path := writeCatalogFile(t, `[{"id": -1, "name": "x", "price": -2}]`)

	_, err := LoadCatalog(path, zap.NewNop())
	require.ErrorIs(t, err, errNoValidProducts)
}

func TestLoadCatalog_FailsOnCorruptJSON(t *testing.T) {
	path := writeCatalogFile(t, `{not json`)

	_, err := LoadCatalog(path, zap.NewNop())
	require.Error(t, err)
}
