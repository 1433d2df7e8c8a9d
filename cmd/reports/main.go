package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ad-report-pipeline/internal/api"
	"ad-report-pipeline/internal/api/handler"
	"ad-report-pipeline/internal/config"
	"ad-report-pipeline/internal/mapping"
	"ad-report-pipeline/internal/store"
	"ad-report-pipeline/pkg/router"
)

var (
	port       = flag.Int("port", 0, "HTTP port (overrides config)")
	configPath = flag.String("config", "config.toml", "path to the config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	// Init run store
	if err := store.InitDB(cfg.Data.DBPath); err != nil {
		log.Fatalf("failed to init run store: %v", err)
	}

	// The reference mappings are required at startup; refusing to start beats
	// producing summaries with no subcategories.
	maps, err := mapping.Load(cfg.Data.ASINMappingPath, cfg.Data.CampaignMappingPath)
	if err != nil {
		log.Fatalf("failed to load reference mappings: %v", err)
	}

	if err := os.MkdirAll(cfg.Data.OutputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	h := &handler.Handler{Maps: maps, OutputDir: cfg.Data.OutputDir}

	// Create router and register API routes
	r := router.New()
	api.RegisterRoutes(r, h)

	// Start server
	if err := r.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}
