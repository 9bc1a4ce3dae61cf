package shop

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (p Product) valid() bool {
	return p.ID > 0 && p.Name != "" && p.Price.IsPositive()
}

// ProductFinder is the read-only catalog view the cart operates against.
type ProductFinder interface {
	Find(ctx context.Context, id int64) (Product, bool, error)
	List(ctx context.Context) ([]Product, error)
	Ping(ctx context.Context) error
}
