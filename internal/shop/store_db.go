package shop

import (
	"context"
	"database/sql"
	"strconv"
	"time"
)

// Postgres-backed stores, selected by DATABASE_URL. Expected schema:
//
//	CREATE TABLE products (
//	    id         BIGINT PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    price      NUMERIC(12,2) NOT NULL CHECK (price > 0)
//	);
//
//	CREATE TABLE cart_items (
//	    product_id   BIGINT PRIMARY KEY,
//	    quantity     INT NOT NULL CHECK (quantity > 0),
//	    name         TEXT NOT NULL,
//	    price        NUMERIC(12,2) NOT NULL,
//	    last_updated TIMESTAMPTZ NOT NULL
//	);

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresCatalog struct {
	db *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (s *PostgresCatalog) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresCatalog) Find(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, price
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.Name, &p.Price)
	})

	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresCatalog) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, price
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

type PostgresCart struct {
	db *sql.DB
}

func NewPostgresCart(db *sql.DB) *PostgresCart {
	return &PostgresCart{db: db}
}

func (s *PostgresCart) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresCart) Add(ctx context.Context, products ProductFinder, productID int64, qty int) (Line, error) {
	p, ok, err := products.Find(ctx, productID)
	if err != nil {
		return Line{}, err
	}
	if !ok {
		return Line{}, ErrProductNotFound
	}

	ln := Line{
		ProductID:   productID,
		Name:        p.Name,
		Price:       p.Price,
		LastUpdated: time.Now().UTC(),
	}

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO cart_items (product_id, quantity, name, price, last_updated)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (product_id) DO UPDATE
			SET quantity     = cart_items.quantity + EXCLUDED.quantity,
			    name         = EXCLUDED.name,
			    price        = EXCLUDED.price,
			    last_updated = EXCLUDED.last_updated
			RETURNING quantity
		`, productID, qty, ln.Name, ln.Price, ln.LastUpdated).Scan(&ln.Quantity)
	})
	if err != nil {
		return Line{}, err
	}
	return ln, nil
}

func (s *PostgresCart) Lines(ctx context.Context) (map[string]Line, error) {
	out := map[string]Line{}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT product_id, quantity, name, price, last_updated
			FROM cart_items
			ORDER BY product_id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var ln Line
			if err := rows.Scan(&ln.ProductID, &ln.Quantity, &ln.Name, &ln.Price, &ln.LastUpdated); err != nil {
				return err
			}
			out[strconv.FormatInt(ln.ProductID, 10)] = ln
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresCart) Checkout(ctx context.Context, products ProductFinder) (Summary, error) {
	lines, err := s.Lines(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum, _, err := summarize(ctx, products, lines)
	return sum, err
}

func (s *PostgresCart) Clear(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items`)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
