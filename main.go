package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mortydex/mortydex/mortydex"
	"github.com/mortydex/mortydex/mortydex/catalog"
	"github.com/mortydex/mortydex/mortydex/database"
	"github.com/mortydex/mortydex/mortydex/logger"
	"github.com/mortydex/mortydex/mortydex/server"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := mortydex.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	customHandler := logger.NewHandler("mortydex", cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	logger.LogSystem("Starting mortydex",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStart := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		logger.LogError("Database connection failed", err,
			slog.Duration("attempted_for", time.Since(dbStart)))
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Database connected",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStart)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.Any("error", err))
		os.Exit(1)
	}

	app := mortydex.New(*cfg, version, commit)
	app.DB = db
	app.Catalog = catalog.NewHTTPClient(cfg.Catalog.BaseURL, nil)
	app.Totals.Bootstrap(ctx, app.Catalog)
	app.Setup()

	refreshCtx, refreshCancel := context.WithCancel(context.Background())
	defer refreshCancel()

	app.Totals.StartRefreshLoop(refreshCtx, app.Catalog, cfg.Catalog.RefreshInterval())

	srv := server.New(app.Users, app.Albums, app.Packs, app.Trades)

	go func() {
		addr := cfg.Server.Addr
		if addr == "" {
			addr = ":8080"
		}
		slog.Info("HTTP server listening", slog.String("addr", addr))
		if err := srv.Listen(addr); err != nil {
			slog.Error("HTTP server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down...")
	if err := srv.Shutdown(); err != nil {
		slog.Error("Shutdown failed", slog.Any("error", err))
	}
}
