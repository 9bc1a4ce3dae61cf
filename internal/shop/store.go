package shop

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found in catalog")

// Line is one product's accumulated quantity in the active cart. Name and
// price are denormalized copies taken from the catalog at add time.
type Line struct {
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated time.Time       `json:"last_updated"`
}

type LineSnapshot struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Total decimal.Decimal
	Items []LineSnapshot
}

// CartStore holds the active cart, one line per product, keyed by the decimal
// string form of the product id. Checkout does not mutate the cart; the
// caller clears it afterwards.
type CartStore interface {
	Add(ctx context.Context, products ProductFinder, productID int64, qty int) (Line, error)
	Lines(ctx context.Context) (map[string]Line, error)
	Checkout(ctx context.Context, products ProductFinder) (Summary, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

// summarize computes the checkout view over a set of lines, skipping lines
// whose product is no longer in the catalog. Subtotals and the grand total
// are rounded to 2 decimal places. Stale line ids are returned for logging.
func summarize(ctx context.Context, products ProductFinder, lines map[string]Line) (Summary, []int64, error) {
	items := make([]LineSnapshot, 0, len(lines))
	var stale []int64
	total := decimal.Zero

	for _, ln := range lines {
		_, ok, err := products.Find(ctx, ln.ProductID)
		if err != nil {
			return Summary{}, nil, err
		}
		if !ok {
			stale = append(stale, ln.ProductID)
			continue
		}

		subtotal := ln.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))).Round(2)
		total = total.Add(subtotal)

		items = append(items, LineSnapshot{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Price:     ln.Price,
			Quantity:  ln.Quantity,
			Subtotal:  subtotal,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return Summary{Total: total.Round(2), Items: items}, stale, nil
}
