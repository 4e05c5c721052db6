package main

import (
	"cmp"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/pkg/otel"
	"github.com/dentalbot/scribe/server"
	"github.com/dentalbot/scribe/server/form"
	"github.com/dentalbot/scribe/server/mcp"

	"github.com/joho/godotenv"
)

func main() {
	configFlag := flag.String("config", "config.yaml", "config file")
	flag.Parse()

	godotenv.Load()

	if otel.EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, *configFlag)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// run serves until ctx is done. Telemetry is flushed before it returns.
func run(ctx context.Context, path string) error {
	shutdown, err := otel.Setup(ctx, "scribe")

	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
	}

	if shutdown != nil {
		defer shutdown(context.Background())
	}

	cfg, err := config.Load(path)

	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	forms, err := form.New(cfg)

	if err != nil {
		slog.Error("failed to create form handler", "error", err)
		return err
	}

	tools, err := mcp.New(cfg)

	if err != nil {
		slog.Error("failed to create mcp handler", "error", err)
		return err
	}

	slog.Info("form schema loaded", "fields", len(cfg.Form.Schema), "model", cfg.Form.Model, "transcriber", cfg.Form.Transcriber)

	s := server.New("scribe", cfg, forms, tools)

	if err := s.ListenAndServe(ctx, cmp.Or(cfg.Address, ":8080")); err != nil {
		slog.Error("server failed", "error", err)
		return err
	}

	return nil
}
