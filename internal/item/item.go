// Package item monta itens rastreados: baixa a página do produto,
// localiza o elemento de preço da loja e extrai o preço.
package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bot-precos/internal/fetcher"
	"bot-precos/internal/markup"
	"bot-precos/internal/metrics"
	"bot-precos/internal/price"
	"bot-precos/internal/store"
)

// Item é o preço de um produto em um momento. É imutável: para verificar
// o preço de novo, crie outro Item.
type Item struct {
	name      string
	url       string
	store     store.Store
	price     string
	checkedAt time.Time
}

// Name retorna o nome do produto
func (i *Item) Name() string { return i.name }

// URL retorna a URL da página do produto
func (i *Item) URL() string { return i.url }

// Store retorna a loja usada na extração
func (i *Item) Store() store.Store { return i.store }

// Price retorna o preço extraído, como texto
func (i *Item) Price() string { return i.price }

// CheckedAt retorna quando o preço foi obtido
func (i *Item) CheckedAt() time.Time { return i.checkedAt }

func (i *Item) String() string {
	return fmt.Sprintf("<Item %s with URL %s>", i.name, i.url)
}

// Fetcher baixa o documento bruto de uma URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Tracker cria itens rastreados
type Tracker struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configura o Tracker
type Option func(*Tracker)

// WithLogger define o logger
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithMetrics define as métricas
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithClock define o relógio usado em CheckedAt
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker cria um novo Tracker
func NewTracker(f Fetcher, opts ...Option) *Tracker {
	t := &Tracker{
		fetcher: f,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Create baixa a página, localiza o elemento de preço e retorna o item.
// Não existe item parcial: qualquer falha retorna nil e o erro.
func (t *Tracker) Create(ctx context.Context, name, url string, s store.Store) (*Item, error) {
	logger := t.logger.With(
		slog.String("store", s.Name()),
		slog.String("url", url),
	)

	start := time.Now()
	raw, err := t.fetcher.Fetch(ctx, url)
	t.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		t.record(logger, s, err)
		return nil, err
	}

	doc, err := markup.Parse(raw)
	if err != nil {
		t.record(logger, s, err)
		return nil, err
	}

	el, err := markup.Find(doc, s)
	if err != nil {
		t.record(logger, s, err)
		return nil, err
	}

	p, err := price.Extract(el.Text())
	if err != nil {
		t.record(logger, s, err)
		return nil, err
	}

	it := &Item{
		name:      name,
		url:       url,
		store:     s,
		price:     p,
		checkedAt: t.now(),
	}
	t.record(logger, s, nil)
	logger.Debug("preço extraído", slog.String("name", name), slog.String("price", p))
	return it, nil
}

func (t *Tracker) record(logger *slog.Logger, s store.Store, err error) {
	result := Classify(err)
	t.metrics.RecordExtraction(s.Name(), result)
	if err != nil {
		logger.Warn("erro ao extrair preço",
			slog.String("result", result),
			slog.Any("error", err))
	}
}

// Classify devolve o tipo de falha de uma extração, usado em métricas e logs
func Classify(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, fetcher.ErrFetch):
		return metrics.ResultFetchError
	case errors.Is(err, markup.ErrElementNotFound):
		return metrics.ResultElementNotFound
	case errors.Is(err, price.ErrPriceNotFound):
		return metrics.ResultPriceNotFound
	default:
		return metrics.ResultError
	}
}
