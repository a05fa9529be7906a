package main

import (
	"net/http"

	"lumo/config"
	"lumo/config/database"
	"lumo/internal/note/store"
	"lumo/internal/transcribe"
	"lumo/pkg/logger"
	"lumo/router"
	"lumo/socket"
)

func main() {
	logger.Init()
	cfg := config.Load()

	// Notes live in Postgres when a database is configured; otherwise the
	// in-memory reference store serves, and nothing survives a restart.
	var notes store.Store
	if cfg.DatabaseURL != "" {
		db := database.Connect(cfg.DatabaseURL)
		defer db.Close()
		notes = store.NewPostgresStore(db)
	} else {
		logger.Sugar.Info("DATABASE_URL not set, using in-memory note store")
		notes = store.NewMemoryStore()
	}

	hub := socket.NewHub()
	go hub.Run()

	transcriber := transcribe.NewWhisperClient(cfg.TranscribeURL, cfg.TranscribeToken)

	handler := router.Setup(cfg, notes, transcriber, hub)

	logger.Sugar.Infof("Lumo backend listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		logger.Sugar.Fatalf("Server failed: %v", err)
	}
}
