package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/pkg/apperror"
)

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, req CategoryFilter) ([]Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, code int) error
	LowStock(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

type AddRequest struct {
	Code            int    `validate:"gt=0"`
	Name            string `validate:"required,max=49"`
	Price           decimal.Decimal
	Stock           int `validate:"gte=0"`
	DiscountPercent decimal.Decimal
	Category        string `validate:"max=29"`
	Subcategory     string `validate:"max=29"`
}

// UpdateRequest changes only what is provided: nil or blank strings and nil
// or negative numbers keep the current value.
type UpdateRequest struct {
	Code            int `validate:"gt=0"`
	Name            *string
	Price           *decimal.Decimal
	Stock           *int
	DiscountPercent *decimal.Decimal
	Category        *string
	Subcategory     *string
}

// CategoryFilter matches products by category and subcategory. A blank value
// or "all" matches everything.
type CategoryFilter struct {
	Category    string
	Subcategory string
}

var (
	ErrProductNotFound = apperror.New(apperror.KindNotFound, "product_not_found")
	ErrDuplicateCode   = apperror.New(apperror.KindInvalidInput, "duplicate_product_code")
	ErrInvalidCode     = apperror.New(apperror.KindInvalidInput, "invalid_code")
	ErrInvalidName     = apperror.New(apperror.KindInvalidInput, "invalid_name")
	ErrInvalidPrice    = apperror.New(apperror.KindInvalidInput, "invalid_price")
	ErrInvalidStock    = apperror.New(apperror.KindInvalidInput, "invalid_stock")
	ErrInvalidDiscount = apperror.New(apperror.KindInvalidInput, "invalid_discount")
	ErrInvalidCategory = apperror.New(apperror.KindInvalidInput, "invalid_category")
	ErrEmptyQuery      = apperror.New(apperror.KindInvalidInput, "empty_query")
)
