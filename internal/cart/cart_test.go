package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCatalog map[int]catalogdomain.Product

func (m memCatalog) FindByCode(_ context.Context, code int) (*catalogdomain.Product, error) {
	p, ok := m[code]
	if !ok {
		return nil, catalogdomain.ErrProductNotFound
	}
	return &p, nil
}

func newCatalog() memCatalog {
	return memCatalog{
		1: {Code: 1, Name: "Milk", Price: decimal.RequireFromString("19.99"), Stock: 10, DiscountPercent: decimal.NewFromInt(15)},
		2: {Code: 2, Name: "Bread", Price: decimal.RequireFromString("30.00"), Stock: 2, DiscountPercent: decimal.Zero},
		3: {Code: 3, Name: "Eggs", Price: decimal.RequireFromString("5.00"), Stock: 12, DiscountPercent: decimal.Zero},
	}
}

func TestNewDefaultsToWalkIn(t *testing.T) {
	assert.Equal(t, WalkInCustomer, New("  ", newCatalog()).Customer())
	assert.Equal(t, "Asha", New(" Asha ", newCatalog()).Customer())
}

func TestAddComputesDiscountedLine(t *testing.T) {
	c := New("", newCatalog())
	line, err := c.Add(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Equal(t, "16.99", line.UnitPrice.StringFixed(2))
	assert.Equal(t, "50.97", line.LineTotal.StringFixed(2))

	snap := c.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.True(t, snap.Lines[0].LineTotal.Equal(snap.Subtotal))
}

func TestAddRejections(t *testing.T) {
	ctx := context.Background()
	c := New("", newCatalog())

	_, err := c.Add(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = c.Add(ctx, 99, 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = c.Add(ctx, 2, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, apperror.KindInsufficientStock, apperror.KindOf(err))

	assert.Zero(t, c.Len())
}

func TestReAddMergesAndRepricesFromCurrentCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog()
	c := New("", catalog)

	_, err := c.Add(ctx, 1, 2)
	require.NoError(t, err)

	milk := catalog[1]
	milk.Price = decimal.RequireFromString("10.00")
	milk.DiscountPercent = decimal.NewFromInt(50)
	catalog[1] = milk

	line, err := c.Add(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "5.00", line.UnitPrice.StringFixed(2))
	assert.Equal(t, "15.00", line.LineTotal.StringFixed(2))
	assert.Equal(t, 1, c.Len())
}

func TestStockCheckIgnoresCartReservation(t *testing.T) {
	ctx := context.Background()
	c := New("", newCatalog())

	_, err := c.Add(ctx, 2, 2)
	require.NoError(t, err)
	line, err := c.Add(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
}

func TestRemovePreservesOrder(t *testing.T) {
	ctx := context.Background()
	c := New("", newCatalog())
	for _, code := range []int{1, 2, 3} {
		_, err := c.Add(ctx, code, 1)
		require.NoError(t, err)
	}

	require.NoError(t, c.Remove(2))
	assert.ErrorIs(t, c.Remove(2), ErrNotInCart)

	snap := c.Snapshot()
	require.Len(t, snap.Lines, 2)
	assert.Equal(t, 1, snap.Lines[0].Code)
	assert.Equal(t, 3, snap.Lines[1].Code)
	assert.Equal(t, "21.99", snap.Subtotal.StringFixed(2))
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New("", newCatalog())
	_, err := c.Add(context.Background(), 3, 1)
	require.NoError(t, err)

	snap := c.Snapshot()
	snap.Lines[0].Quantity = 100
	assert.Equal(t, 1, c.Snapshot().Lines[0].Quantity)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.Snapshot().Subtotal.IsZero())
}
