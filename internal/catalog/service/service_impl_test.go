package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/catalog/repository"
	"github.com/smallbiznis/retailpos/internal/config"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	store := repository.NewFileStore(filepath.Join(t.TempDir(), "products.txt"), zap.NewNop())
	return New(Params{Log: zap.NewNop(), Store: store, Config: config.Config{}})
}

func seed(t *testing.T, svc domain.Service, reqs ...domain.AddRequest) {
	t.Helper()
	for _, req := range reqs {
		_, err := svc.Add(context.Background(), req)
		require.NoError(t, err)
	}
}

func product(code int, name string, price string, stock int, category, sub string) domain.AddRequest {
	return domain.AddRequest{
		Code:            code,
		Name:            name,
		Price:           decimal.RequireFromString(price),
		Stock:           stock,
		DiscountPercent: decimal.Zero,
		Category:        category,
		Subcategory:     sub,
	}
}

func TestAddRejectsDuplicateAndInvalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc, product(1, "Milk", "10.00", 5, "Dairy", "Milk"))

	_, err := svc.Add(ctx, product(1, "Other", "1.00", 1, "", ""))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = svc.Add(ctx, product(0, "Zero", "1.00", 1, "", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.Add(ctx, product(2, "  ", "1.00", 1, "", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Add(ctx, product(2, "Neg", "-1.00", 1, "", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	bad := product(2, "Disc", "1.00", 1, "", "")
	bad.DiscountPercent = decimal.NewFromInt(101)
	_, err = svc.Add(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}

func TestAddDefaultsCategory(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.Add(context.Background(), product(9, "Pen", "2.00", 40, "", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategory, p.Category)
	assert.Equal(t, domain.DefaultSubcategory, p.Subcategory)
}

func TestListByCategoryWildcards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc,
		product(1, "Milk", "10.00", 5, "Dairy", "Milk"),
		product(2, "Cheese", "30.00", 5, "Dairy", "Cheese"),
		product(3, "Soap", "8.00", 5, "Home", "Bath"),
	)

	all, err := svc.ListByCategory(ctx, domain.CategoryFilter{Category: "all", Subcategory: ""})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dairy, err := svc.ListByCategory(ctx, domain.CategoryFilter{Category: "Dairy", Subcategory: "all"})
	require.NoError(t, err)
	assert.Len(t, dairy, 2)

	cheese, err := svc.ListByCategory(ctx, domain.CategoryFilter{Category: "Dairy", Subcategory: "Cheese"})
	require.NoError(t, err)
	require.Len(t, cheese, 1)
	assert.Equal(t, 2, cheese[0].Code)
}

func TestUpdateKeepsUnprovidedValues(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc, product(1, "Milk", "10.00", 5, "Dairy", "Milk"))

	blank := ""
	negPrice := decimal.NewFromInt(-1)
	newStock := 12
	negStock := -1
	disc := decimal.NewFromInt(15)

	p, err := svc.Update(ctx, domain.UpdateRequest{
		Code:            1,
		Name:            &blank,
		Price:           &negPrice,
		Stock:           &newStock,
		DiscountPercent: &disc,
		Category:        &blank,
	})
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	assert.True(t, decimal.NewFromInt(10).Equal(p.Price))
	assert.Equal(t, 12, p.Stock)
	assert.True(t, disc.Equal(p.DiscountPercent))
	assert.Equal(t, "Dairy", p.Category)

	p, err = svc.Update(ctx, domain.UpdateRequest{Code: 1, Stock: &negStock})
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)

	_, err = svc.Update(ctx, domain.UpdateRequest{Code: 99})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeletePreservesOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc,
		product(1, "A", "1.00", 1, "", ""),
		product(2, "B", "1.00", 1, "", ""),
		product(3, "C", "1.00", 1, "", ""),
	)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 2), domain.ErrProductNotFound)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].Code)
	assert.Equal(t, 3, products[1].Code)
}

func TestLowStockUsesThreshold(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc,
		product(1, "A", "1.00", 4, "", ""),
		product(2, "B", "1.00", 5, "", ""),
		product(3, "C", "1.00", 0, "", ""),
	)

	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, 1, low[0].Code)
	assert.Equal(t, 3, low[1].Code)
}

func TestSearchByCodeOrName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc,
		product(10, "Green Tea", "4.00", 9, "", ""),
		product(11, "Black TEA", "4.00", 9, "", ""),
		product(12, "Coffee", "6.00", 9, "", ""),
	)

	byCode, err := svc.Search(ctx, "12")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Coffee", byCode[0].Name)

	byName, err := svc.Search(ctx, "tea")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	_, err = svc.Search(ctx, "404")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Search(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}
