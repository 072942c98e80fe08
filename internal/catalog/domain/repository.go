package domain

import (
	"context"
)

// Store loads and persists the whole catalog. SaveAll replaces the prior
// state; concurrent writers are not coordinated and the last save wins.
type Store interface {
	LoadAll(ctx context.Context) ([]Product, error)
	SaveAll(ctx context.Context, products []Product) error
	FindByCode(ctx context.Context, code int) (*Product, error)
}
