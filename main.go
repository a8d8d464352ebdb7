package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"hiinakas-server/api"
	"hiinakas-server/config"
	"hiinakas-server/lobby"
	"hiinakas-server/loghandler"
	"hiinakas-server/storage"
	"hiinakas-server/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables")
	}

	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	cfg := config.Load()
	slog.Info("configuration loaded", "tag", "main",
		"wsPort", cfg.WSPort, "maxPlayers", cfg.DefaultMaxPlayers,
		"turnLimitSec", cfg.TurnLimitSec, "keepLobbyAfterGame", cfg.KeepLobbyAfterGame)

	if cfg.AuthBaseURL == "" {
		slog.Info("auth not configured; accepting set_name identities", "tag", "main")
	}

	ctx := context.Background()

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("storage unavailable; continuing without persistence", "tag", "main", "err", err)
		store = nil
	}
	defer store.Close()

	hub := ws.NewHub(cfg)

	var results lobby.ResultSink
	if store != nil {
		results = store
	}
	registry := lobby.NewRegistry(cfg, hub, results)
	hub.SetRegistry(registry)
	go hub.Run(ctx)

	handler := api.NewHandler(cfg, store)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r)
	})
	mux.HandleFunc("/api/history", handler.History)
	mux.HandleFunc("/api/leaderboard", handler.Leaderboard)

	addr := fmt.Sprintf(":%d", cfg.WSPort)
	slog.Info("Hiinakas server listening", "tag", "main", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server stopped", "tag", "main", "err", err)
		os.Exit(1)
	}
}
