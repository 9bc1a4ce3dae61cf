package shop

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemCart is the non-persistent cart store, used in tests and as a fallback
// when no cart file is configured.
type MemCart struct {
	mu    sync.Mutex
	lines map[string]Line
}

func NewMemCart() *MemCart {
	return &MemCart{lines: map[string]Line{}}
}

func (c *MemCart) Add(ctx context.Context, products ProductFinder, productID int64, qty int) (Line, error) {
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
	return ln, nil
}

func (c *MemCart) Lines(_ context.Context) (map[string]Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Line, len(c.lines))
	for k, v := range c.lines {
		out[k] = v
	}
	return out, nil
}

func (c *MemCart) Checkout(ctx context.Context, products ProductFinder) (Summary, error) {
	lines, _ := c.Lines(ctx)

	sum, _, err := summarize(ctx, products, lines)
	return sum, err
}

func (c *MemCart) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = map[string]Line{}
	return nil
}

func (c *MemCart) Ping(_ context.Context) error { return nil }
