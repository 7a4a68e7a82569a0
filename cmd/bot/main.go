package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bot-precos/config"
	"bot-precos/internal/app"
	"bot-precos/internal/bot"
	"bot-precos/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	envErr := godotenv.Load()

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar configurações", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if err := cfg.RequireBotToken(); err != nil {
		logger.Error("Erro ao carregar configurações", slog.Any("error", err))
		os.Exit(1)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Erro ao inicializar serviços", slog.Any("error", err))
		os.Exit(1)
	}
	defer a.Close()

	// Inicializar bot do Telegram
	api, err := bot.Init(cfg.TelegramBotToken, logger)
	if err != nil {
		logger.Error("Erro ao inicializar bot do Telegram", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.ServeMetrics(ctx)

	b := bot.New(api, bot.Deps{
		Tracker:  a.Tracker,
		Accounts: a.Accounts,
		Registry: a.Registry,
		History:  a.DB,
		Monitor:  a.Monitor,
	}, cfg.TelegramChatID, logger)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	b.Run(ctx, updates)

	api.StopReceivingUpdates()
	logger.Info("Encerrando bot...")
}
