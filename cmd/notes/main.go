package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniSuite/internal/note"
	"MiniSuite/pkg/kit"
)

func main() {
	service := "notes"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8083")

	store, err := note.NewDirStore(getenv("NOTES_DIR", "notes"), log)
	if err != nil {
		log.Fatal("init notes dir failed", zap.Error(err))
	}
	s := &note.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := note.NewHandler(s, note.HTTPDeps{
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
