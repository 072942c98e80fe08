package domain

import (
	"context"
)

type Repository interface {
	LoadAll(ctx context.Context) ([]Customer, error)
	// Append adds one record without rewriting the file.
	Append(ctx context.Context, customer Customer) error
	SaveAll(ctx context.Context, customers []Customer) error
}
