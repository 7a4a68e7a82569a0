// Package app monta os componentes compartilhados pelos executáveis.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"bot-precos/config"
	"bot-precos/internal/account"
	"bot-precos/internal/database"
	"bot-precos/internal/fetcher"
	"bot-precos/internal/item"
	"bot-precos/internal/metrics"
	"bot-precos/internal/monitor"
	"bot-precos/internal/store"
)

// App reúne os serviços já configurados
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *database.DB
	Registry *store.Registry
	Tracker  *item.Tracker
	Accounts *account.Manager
	Monitor  *monitor.Monitor
	Metrics  *metrics.Metrics
}

// New abre o banco, carrega as lojas e cria os serviços
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	registry, err := loadRegistry(cfg.StoresFile)
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mt := metrics.New(reg)

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Timeout = cfg.FetchTimeout

	tracker := item.NewTracker(fetcher.New(fetchCfg),
		item.WithLogger(logger),
		item.WithMetrics(mt),
	)
	accounts := account.NewManager(db, account.NewPBKDF2Hasher(), account.RegexValidator{},
		account.WithLogger(logger),
		account.WithMetrics(mt),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Registry: registry,
		Tracker:  tracker,
		Accounts: accounts,
		Monitor:  monitor.New(db, tracker, registry, cfg.CheckWorkers, logger),
		Metrics:  mt,
	}, nil
}

// Close libera o banco de dados
func (a *App) Close() error {
	return a.DB.Close()
}

// ServeMetrics expõe /metrics em METRICS_ADDR até o contexto terminar.
// Sem endereço configurado, não faz nada.
func (a *App) ServeMetrics(ctx context.Context) {
	if a.Config.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	srv := &http.Server{
		Addr:              a.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		a.Logger.Info("servidor de métricas iniciado", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("erro no servidor de métricas", slog.Any("error", err))
		}
	}()
}

// loadRegistry junta as lojas padrão com as do arquivo YAML, se houver
func loadRegistry(path string) (*store.Registry, error) {
	registry := store.Default()
	if path == "" {
		return registry, nil
	}

	stores, err := store.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar lojas: %w", err)
	}
	return registry.With(stores...), nil
}
