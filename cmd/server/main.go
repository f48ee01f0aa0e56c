package main

import (
	"log"
	"time"

	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/httpx"
	"github.com/draftforge/draftforge/internal/logger"
	"github.com/draftforge/draftforge/internal/media"
	"github.com/draftforge/draftforge/internal/publish"
	"github.com/draftforge/draftforge/internal/research"
	"github.com/draftforge/draftforge/internal/server"
	"github.com/draftforge/draftforge/internal/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	lg := logger.SetupLogger(cfg)

	lg.Info("Starting draftforge server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	httpClient := httpx.New(lg,
		httpx.WithMaxRetries(cfg.HTTPMaxRetries),
		httpx.WithTimeout(time.Duration(cfg.HTTPTimeoutSec)*time.Second),
	)

	engine := workflow.NewEngine(
		lg,
		cfg,
		ai.NewClient(cfg),
		research.NewSearcher(httpClient, cfg),
		research.NewScraper(httpClient, cfg),
		media.NewLibrary(httpClient, cfg),
		publish.NewPublisher(httpClient, cfg),
	)

	srv := server.New(cfg, lg, engine)
	if err := server.Run(srv); err != nil {
		lg.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
