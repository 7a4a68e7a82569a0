package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bot-precos/config"
	"bot-precos/internal/app"
	"bot-precos/internal/cli"
	"bot-precos/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar configurações", slog.Any("error", err))
		os.Exit(1)
	}

	// Logs vão para stderr e ficam em warn por padrão para não poluir a saída
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger := logging.New(level, cfg.LogFormat)
	slog.SetDefault(logger)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Erro ao inicializar serviços", slog.Any("error", err))
		os.Exit(1)
	}

	cli.SetServices(&cli.Services{
		Tracker:  a.Tracker,
		Accounts: a.Accounts,
		Registry: a.Registry,
		History:  a.DB,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.Execute(ctx)
	stop()
	_ = a.Close()
	if err != nil {
		os.Exit(1)
	}
}
