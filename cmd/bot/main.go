package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/bot"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/config"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/scheduler"
	"github.com/inigomartinez/carcassonne-spain-telegram-bot/internal/storage"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log.Level)

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.Database.Path)
	if err != nil {
		log.Error("open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	b, err := bot.New(cfg, store, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(log)
	if err := sched.AddDaily("results", cfg.Schedule.Results, b.BroadcastResults); err != nil {
		log.Error("schedule results", "error", err)
		os.Exit(1)
	}
	if err := sched.AddDaily("schedule", cfg.Schedule.Schedule, b.BroadcastFixtures); err != nil {
		log.Error("schedule fixtures", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot", "groups", len(cfg.Groups()))

	go sched.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
