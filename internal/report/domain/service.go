package domain

import (
	"context"

	"github.com/smallbiznis/retailpos/pkg/apperror"
)

type Service interface {
	TotalIncome(ctx context.Context) (Income, error)
	// DailyIncome sums receipt rows whose timestamp starts with date
	// (YYYY-MM-DD).
	DailyIncome(ctx context.Context, date string) (Income, error)
	// MonthlyIncome sums receipt rows whose timestamp shares the first seven
	// characters of yearMonth (YYYY-MM).
	MonthlyIncome(ctx context.Context, yearMonth string) (Income, error)
	ProductWise(ctx context.Context, code int) (ProductSales, error)
	// TopSelling ranks products from the sales-item ledger by quantity, then
	// revenue, returning at most ten products. A non-positive limit uses the
	// configured default.
	TopSelling(ctx context.Context, limit int) ([]ProductRank, error)
	CustomerHistory(ctx context.Context, name string) (CustomerHistory, error)
}

var (
	ErrInvalidDate     = apperror.New(apperror.KindInvalidInput, "invalid_date")
	ErrInvalidMonth    = apperror.New(apperror.KindInvalidInput, "invalid_month")
	ErrInvalidCode     = apperror.New(apperror.KindInvalidInput, "invalid_product_code")
	ErrInvalidCustomer = apperror.New(apperror.KindInvalidInput, "invalid_customer_name")
)
