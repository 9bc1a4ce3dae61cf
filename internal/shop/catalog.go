package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
)

var errNoValidProducts = errors.New("no valid products in catalog file")

// Catalog is the in-memory product reference data. It is populated once at
// startup and never mutated, so reads need no locking.
type Catalog struct {
	m map[int64]Product
}

// LoadCatalog reads a JSON array of products. Entries that fail validation are
// skipped with a warning; a missing or unreadable file, or a file with zero
// valid entries, is a startup failure.
func LoadCatalog(path string, log *zap.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	m := make(map[int64]Product, len(entries))
	for i, e := range entries {
		var p Product
		if err := json.Unmarshal(e, &p); err != nil || !p.valid() {
			if log != nil {
				log.Warn("skipping invalid catalog entry",
					zap.Int("index", i),
					zap.Int64("product_id", p.ID),
					zap.Error(err))
			}
			continue
		}
		m[p.ID] = p
	}

	if len(m) == 0 {
		return nil, errNoValidProducts
	}

	if log != nil {
		log.Info("catalog loaded", zap.Int("products", len(m)))
	}
	return &Catalog{m: m}, nil
}

// NewCatalog builds a catalog from already-validated products. Test seam.
func NewCatalog(products ...Product) *Catalog {
	m := make(map[int64]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &Catalog{m: m}
}

func (c *Catalog) Find(_ context.Context, id int64) (Product, bool, error) {
	p, ok := c.m[id]
	return p, ok, nil
}

func (c *Catalog) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(c.m))
	for _, p := range c.m {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Catalog) Ping(_ context.Context) error { return nil }
