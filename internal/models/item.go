package models

import "time"

// ItemRecord representa um preço salvo no histórico
type ItemRecord struct {
	ID        int64
	Name      string
	URL       string
	Store     string
	Price     string
	CheckedAt time.Time
}
