package item

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bot-precos/internal/store"
)

// Request descreve um item a ser criado
type Request struct {
	Name  string
	URL   string
	Store store.Store
}

// Result é o resultado da criação de um item
type Result struct {
	Request Request
	Item    *Item
	Err     error
}

// CreateAll cria vários itens em paralelo com no máximo workers criações
// simultâneas. Os resultados seguem a ordem das requisições e a falha de um
// item não cancela os demais.
func (t *Tracker) CreateAll(ctx context.Context, reqs []Request, workers int) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(reqs))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, req := range reqs {
		g.Go(func() error {
			it, err := t.Create(ctx, req.Name, req.URL, req.Store)
			results[i] = Result{Request: req, Item: it, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
