package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Yizzii/fishbot/internal/bot"
	"github.com/Yizzii/fishbot/internal/console"
	"github.com/Yizzii/fishbot/internal/economy"
	"github.com/Yizzii/fishbot/internal/fish"
	"github.com/Yizzii/fishbot/internal/ratelimit"
	"github.com/Yizzii/fishbot/internal/shop"
	"github.com/Yizzii/fishbot/internal/store"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	setupLogging(config)

	catalog, err := fish.LoadCatalogFromJSON(config.FishbaseFile)
	if err != nil {
		slog.Error("failed to load fish catalog", "err", err)
		os.Exit(1)
	}

	st, err := store.NewStore(config.DataDir)
	if err != nil {
		slog.Error("failed to open state store", "err", err)
		os.Exit(1)
	}

	catchLogPath := config.CatchLogDB
	if catchLogPath == "" {
		catchLogPath = filepath.Join(config.DataDir, "catches.db")
	}
	catchLog, err := store.OpenCatchLog(catchLogPath)
	if err != nil {
		slog.Error("failed to open catch log", "err", err)
		os.Exit(1)
	}
	defer catchLog.Close()

	resolver := fish.NewResolver(catalog, nil, nil)
	ledger := economy.NewLedger(st, nil)
	limiter := ratelimit.NewLimiter(time.Duration(config.CooldownSeconds)*time.Second, nil)
	module := bot.New(st, ledger, resolver, shop.NewShop(st), catchLog, limiter, config.PrivilegedUsername)
	writer := console.NewWriter(config.ExecFile, config.SubmitCommand)
	tailer := console.NewTailer(config.ConsoleFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lines := make(chan string, 64)
	tailErr := make(chan error, 1)
	go func() {
		tailErr <- tailer.Run(ctx, lines)
	}()

	slog.Info("bot is running", "console", config.ConsoleFile)

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down")
			return
		case err := <-tailErr:
			if err != nil && ctx.Err() == nil {
				slog.Error("console tailer failed", "err", err)
				os.Exit(1)
			}
			return
		case line := <-lines:
			cmd, ok := console.ParseLine(line)
			if !ok {
				continue
			}
			responses, err := module.Dispatch(ctx, cmd)
			if err != nil {
				// Storage or catalog failure; bail rather than
				// keep running against broken state.
				slog.Error("command failed", "command", cmd.Command, "err", err)
				os.Exit(1)
			}
			for _, r := range responses {
				if err := writer.Say(r); err != nil {
					slog.Error("failed to deliver response", "err", err)
				}
			}
		}
	}
}

func setupLogging(config *Config) {
	var out io.Writer = os.Stderr
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		}
	}

	level := slog.LevelInfo
	if config.LogLevel == "debug" {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
}
