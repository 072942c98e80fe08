package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	store, err := NewSQLStore(conn)
	require.NoError(t, err)
	return store
}

func TestSQLStoreSaveAllReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)

	require.NoError(t, store.SaveAll(ctx, []domain.Product{
		{Code: 2, Name: "Tea", Price: decimal.RequireFromString("4.50"), Stock: 10, DiscountPercent: decimal.Zero, Category: "Drinks", Subcategory: "Hot"},
		{Code: 1, Name: "Rice", Price: decimal.RequireFromString("20.00"), Stock: 3, DiscountPercent: decimal.NewFromInt(5), Category: "Grocery", Subcategory: "Grain"},
	}))
	require.NoError(t, store.SaveAll(ctx, []domain.Product{
		{Code: 1, Name: "Rice", Price: decimal.RequireFromString("20.00"), Stock: 1, DiscountPercent: decimal.NewFromInt(5), Category: "Grocery", Subcategory: "Grain"},
	}))

	products, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].Stock)
	assert.True(t, decimal.RequireFromString("20").Equal(products[0].Price))

	_, err = store.FindByCode(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSQLStoreRejectsDuplicateCodes(t *testing.T) {
	store := newSQLStore(t)
	err := store.SaveAll(context.Background(), []domain.Product{
		{Code: 1, Name: "A", Price: decimal.Zero, DiscountPercent: decimal.Zero, Category: "x", Subcategory: "y"},
		{Code: 1, Name: "B", Price: decimal.Zero, DiscountPercent: decimal.Zero, Category: "x", Subcategory: "y"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}
