package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"claimscope/adapters/api"
	"claimscope/adapters/tabular"
	"claimscope/internal"
	"claimscope/internal/analysis"
	"claimscope/internal/config"
	"claimscope/ui"
)

func main() {
	// .env is optional, real environments set variables directly
	if err := godotenv.Load(); err == nil {
		internal.DefaultLogger.Info("Loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	table, err := tabular.Load(cfg.Data.File, cfg.Data.SheetName)
	if err != nil {
		log.Fatalf("Failed to load claims data from %s: %v", cfg.Data.File, err)
	}
	internal.DefaultLogger.Info("Loaded %d claims from %s", table.Rows(), cfg.Data.File)

	engine := analysis.NewEngine(table)

	bundle, err := engine.Bundle(context.Background())
	if err != nil {
		log.Fatalf("Failed to build chart bundle: %v", err)
	}

	service := api.NewService(engine, cfg.Server.GinMode)
	go func() {
		if err := service.Start(cfg.Server.APIPort); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	app, err := ui.NewApp(engine, bundle)
	if err != nil {
		log.Fatalf("Failed to create dashboard app: %v", err)
	}
	log.Printf("Dashboard on http://localhost:%s, JSON API on http://localhost:%s",
		cfg.Server.Port, cfg.Server.APIPort)
	log.Fatal(app.Start(cfg.Server.Port))
}
