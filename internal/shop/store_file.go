package shop

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"MiniSuite/pkg/jsonfile"
)

// FileCart keeps the cart in memory and mirrors every mutation into a single
// JSON file. Persistence failures are logged and swallowed: the in-memory
// cart stays authoritative for the life of the process.
type FileCart struct {
	mu    sync.Mutex
	path  string
	lines map[string]Line
	log   *zap.Logger
}

// NewFileCart loads existing cart state from path. A missing or corrupt file
// degrades to an empty cart with a warning rather than failing startup.
func NewFileCart(path string, log *zap.Logger) *FileCart {
	c := &FileCart{
		path:  path,
		lines: map[string]Line{},
		log:   log,
	}

	loaded := map[string]Line{}
	ok, err := jsonfile.Load(path, &loaded)
	switch {
	case err != nil:
		if log != nil {
			log.Warn("cart load failed, starting empty", zap.String("path", path), zap.Error(err))
		}
	case ok:
		c.lines = loaded
		if log != nil {
			log.Info("cart loaded", zap.String("path", path), zap.Int("lines", len(loaded)))
		}
	}

	return c
}

func (c *FileCart) Add(ctx context.Context, products ProductFinder, productID int64, qty int) (Line, error) {
	p, ok, err := products.Find(ctx, productID)
	if err != nil {
		return Line{}, err
	}
	if !ok {
		return Line{}, ErrProductNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := strconv.FormatInt(productID, 10)
	ln := Line{
		ProductID:   productID,
		Quantity:    c.lines[key].Quantity + qty,
		Name:        p.Name,
		Price:       p.Price,
		LastUpdated: time.Now().UTC(),
	}
	c.lines[key] = ln

	c.persistLocked()
	return ln, nil
}

func (c *FileCart) Lines(_ context.Context) (map[string]Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Line, len(c.lines))
	for k, v := range c.lines {
		out[k] = v
	}
	return out, nil
}

func (c *FileCart) Checkout(ctx context.Context, products ProductFinder) (Summary, error) {
	c.mu.Lock()
	lines := make(map[string]Line, len(c.lines))
	for k, v := range c.lines {
		lines[k] = v
	}
	c.mu.Unlock()

	sum, stale, err := summarize(ctx, products, lines)
	if err != nil {
		return Summary{}, err
	}

	if c.log != nil {
		for _, id := range stale {
			c.log.Warn("skipping stale cart line", zap.Int64("product_id", id))
		}
	}
	return sum, nil
}

func (c *FileCart) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = map[string]Line{}
	c.persistLocked()
	return nil
}

func (c *FileCart) Ping(_ context.Context) error { return nil }

func (c *FileCart) persistLocked() {
	if err := jsonfile.Save(c.path, c.lines); err != nil && c.log != nil {
		c.log.Error("cart persist failed", zap.String("path", c.path), zap.Error(err))
	}
}
