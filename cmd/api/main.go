package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"ticketboard/internal/board"
	"ticketboard/internal/config"
	"ticketboard/internal/http"
	"ticketboard/internal/service"
	"ticketboard/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize registry database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Registry database initialized", "path", cfg.DBPath)

	ticketRepo := storage.NewTicketRepo(db)

	// Initialize board file store
	fileStore, err := board.NewStore(cfg.BoardRoot)
	if err != nil {
		log.Fatalf("Failed to initialize board store: %v", err)
	}
	slog.Info("Board store initialized", "root", fileStore.Root())

	// Create section service
	sections := service.NewSectionService(ticketRepo, fileStore, cfg.MaxContentLength)
	slog.Info("Section engine initialized", "max_content_length", cfg.MaxContentLength)

	// Create router with dependencies
	deps := &http.Deps{
		Sections:  sections,
		DB:        db,
		BoardRoot: fileStore.Root(),
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
