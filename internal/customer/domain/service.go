package domain

import (
	"context"

	"github.com/smallbiznis/retailpos/pkg/apperror"
)

type RegisterRequest struct {
	Name    string `validate:"required,max=49"`
	Phone   string `validate:"max=14"`
	Email   string `validate:"omitempty,email,max=49"`
	Address string `validate:"max=99"`
}

// UpdateRequest targets every customer whose name equals Name, ignoring case.
// Nil fields are left untouched.
type UpdateRequest struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (Customer, error)
	Update(ctx context.Context, req UpdateRequest) ([]Customer, error)
	Search(ctx context.Context, query string) ([]Customer, error)
	List(ctx context.Context) ([]Customer, error)
}

var (
	ErrCustomerNotFound = apperror.New(apperror.KindNotFound, "customer_not_found")
	ErrInvalidName      = apperror.New(apperror.KindInvalidInput, "invalid_name")
	ErrInvalidPhone     = apperror.New(apperror.KindInvalidInput, "invalid_phone")
	ErrInvalidEmail     = apperror.New(apperror.KindInvalidInput, "invalid_email")
	ErrInvalidAddress   = apperror.New(apperror.KindInvalidInput, "invalid_address")
	ErrEmptyQuery       = apperror.New(apperror.KindInvalidInput, "empty_query")
	ErrNothingToUpdate  = apperror.New(apperror.KindInvalidInput, "nothing_to_update")
)
