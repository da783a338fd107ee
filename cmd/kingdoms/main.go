// Command kingdoms runs the Medieval Kingdoms rules engine behind an
// HTTP command surface.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/kingdoms/internal/api"
	"github.com/talgya/kingdoms/internal/config"
	"github.com/talgya/kingdoms/internal/content"
	"github.com/talgya/kingdoms/internal/engine"
	"github.com/talgya/kingdoms/internal/entropy"
	"github.com/talgya/kingdoms/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Medieval Kingdoms — rules engine")

	// ── Catalogs ──────────────────────────────────────────────────────
	cat, err := content.Load()
	if err != nil {
		slog.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}
	slog.Info("catalogs loaded",
		"nations", len(cat.Nations),
		"actions", len(cat.Actions)+len(cat.WarActions)+len(cat.EconomyActions),
		"events", len(cat.Events),
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	store, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source
	if cfg.Seed != 0 {
		rng = entropy.Seeded(cfg.Seed)
		slog.Info("seeded entropy", "seed", cfg.Seed)
	} else {
		rng = entropy.Crypto()
	}

	// ── Game (resume if a save exists) ───────────────────────────────
	game := engine.New(cat, rng)
	if st, ok, err := store.Load(); err != nil {
		slog.Error("failed to load save", "error", err)
		os.Exit(1)
	} else if ok {
		game.Restore(st)
		slog.Info("playthrough restored", "playthrough", st.Playthrough, "turn", st.Turn)
	} else {
		slog.Info("no save found, starting fresh")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("KINGDOMS_ADMIN_KEY not set — command endpoints are open")
	}

	apiServer := &api.Server{
		Game:     game,
		Store:    store,
		Port:     cfg.Port,
		AdminKey: cfg.AdminKey,
	}
	apiServer.Start()

	fmt.Printf("API: http://localhost:%d/api/v1/state\n", cfg.Port)

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if err := store.Save(game.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Engine stopped. Playthrough saved.")
}
