package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"bot-precos/internal/item"
	"bot-precos/internal/models"
	"bot-precos/internal/store"
)

// History é o histórico de preços usado pelo monitor
type History interface {
	ListTracked(ctx context.Context) ([]models.ItemRecord, error)
	SaveItem(ctx context.Context, it *item.Item) (int64, error)
}

// Outcome é o resultado da verificação de um item salvo
type Outcome struct {
	Previous models.ItemRecord
	Item     *item.Item
	Err      error
}

// Changed informa se o preço mudou desde o último registro
func (o Outcome) Changed() bool {
	return o.Err == nil && o.Item != nil && o.Item.Price() != o.Previous.Price
}

// Monitor verifica novamente, sob demanda, os produtos do histórico
type Monitor struct {
	history  History
	tracker  *item.Tracker
	registry *store.Registry
	workers  int
	logger   *slog.Logger
}

// New cria uma nova instância do monitor
func New(history History, tracker *item.Tracker, registry *store.Registry, workers int, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		history:  history,
		tracker:  tracker,
		registry: registry,
		workers:  workers,
		logger:   logger,
	}
}

// CheckAll cria um item novo para cada produto do histórico e salva os
// preços obtidos. Falhas de um produto não interrompem os demais.
func (m *Monitor) CheckAll(ctx context.Context) ([]Outcome, error) {
	records, err := m.history.ListTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos: %w", err)
	}

	outcomes := make([]Outcome, len(records))
	reqs := make([]item.Request, 0, len(records))
	index := make([]int, 0, len(records))

	for i, r := range records {
		outcomes[i].Previous = r
		s, ok := m.registry.Lookup(r.Store)
		if !ok {
			outcomes[i].Err = fmt.Errorf("loja %q não está mais configurada", r.Store)
			continue
		}
		reqs = append(reqs, item.Request{Name: r.Name, URL: r.URL, Store: s})
		index = append(index, i)
	}

	for j, res := range m.tracker.CreateAll(ctx, reqs, m.workers) {
		o := &outcomes[index[j]]
		o.Item, o.Err = res.Item, res.Err
		if res.Err != nil {
			continue
		}
		if _, err := m.history.SaveItem(ctx, res.Item); err != nil {
			o.Err = fmt.Errorf("erro ao salvar preço no banco: %w", err)
			continue
		}
		if o.Changed() {
			m.logger.Info("preço alterado",
				slog.String("name", res.Item.Name()),
				slog.String("from", o.Previous.Price),
				slog.String("to", res.Item.Price()))
		}
	}

	return outcomes, nil
}
