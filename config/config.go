package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contém as configurações da aplicação
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64
	DatabasePath     string
	FetchTimeout     time.Duration
	StoresFile       string
	CheckWorkers     int
	MetricsAddr      string
	LogLevel         string
	LogFormat        string
}

const (
	defaultDatabasePath = "./precos.db"
	defaultFetchTimeout = 30
	defaultCheckWorkers = 4
)

// Load carrega as configurações das variáveis de ambiente
func Load() (*Config, error) {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabasePath:     getEnv("DATABASE_PATH", defaultDatabasePath),
		StoresFile:       os.Getenv("STORES_FILE"),
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	// Chat ID é opcional (restringe o bot a um único chat)
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID inválido: %q", chatIDStr)
		}
		cfg.TelegramChatID = chatID
	}

	seconds, err := getEnvInt("FETCH_TIMEOUT_SECONDS", defaultFetchTimeout)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(seconds) * time.Second

	if cfg.CheckWorkers, err = getEnvInt("CHECK_WORKERS", defaultCheckWorkers); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica se os valores estão dentro dos limites aceitos
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("DATABASE_PATH não pode ser vazio"))
	}
	if c.FetchTimeout <= 0 || c.FetchTimeout > 5*time.Minute {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT_SECONDS fora do intervalo (1-300): %s", c.FetchTimeout))
	}
	if c.CheckWorkers < 1 || c.CheckWorkers > 64 {
		errs = append(errs, fmt.Errorf("CHECK_WORKERS fora do intervalo (1-64): %d", c.CheckWorkers))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT inválido: %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL inválido: %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// RequireBotToken garante que o token do Telegram foi configurado
func (c *Config) RequireBotToken() error {
	if c.TelegramBotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN não configurado")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %q", key, v)
	}
	return n, nil
}
