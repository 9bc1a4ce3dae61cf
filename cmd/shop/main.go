package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniSuite/internal/shop"
	"MiniSuite/pkg/kit"
)

func main() {
	service := "shop"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")

	var (
		products shop.ProductFinder
		cart     shop.CartStore
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		defer func() { _ = db.Close() }()

		products = shop.NewPostgresCatalog(db)
		cart = shop.NewPostgresCart(db)
	} else {
		catalog, err := shop.LoadCatalog(getenv("PRODUCTS_FILE", "products.json"), log)
		if err != nil {
			log.Fatal("load catalog failed", zap.Error(err))
		}
		products = catalog
		cart = shop.NewFileCart(getenv("CART_FILE", "cart.json"), log)
	}

	s := &shop.Server{Products: products, Cart: cart, Log: log}

	reg := prometheus.NewRegistry()
	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: getenv("METRICS_ENABLED", "true") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
