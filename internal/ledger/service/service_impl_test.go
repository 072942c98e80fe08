package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	"github.com/smallbiznis/retailpos/internal/ledger/repository"
	obsmetrics "github.com/smallbiznis/retailpos/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc            ledgerdomain.Service
	receiptsPath   string
	salesItemsPath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	receipts := filepath.Join(dir, "receipts.txt")
	sales := filepath.Join(dir, "sales_items.txt")
	metrics, err := obsmetrics.New(obsmetrics.Config{ServiceName: "test"}, obsmetrics.NewRegistry())
	require.NoError(t, err)
	return fixture{
		svc: NewService(Params{
			Log:        zap.NewNop(),
			Repo:       repository.New(receipts, sales),
			ObsMetrics: metrics,
		}),
		receiptsPath:   receipts,
		salesItemsPath: sales,
	}
}

func sale(customer string, at time.Time, lines ...ledgerdomain.SaleLine) ledgerdomain.Sale {
	return ledgerdomain.Sale{Customer: customer, At: at, Lines: lines}
}

func line(code int, name string, qty int, unit, total string) ledgerdomain.SaleLine {
	return ledgerdomain.SaleLine{
		ProductCode: code,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(unit),
		LineTotal:   decimal.RequireFromString(total),
	}
}

func TestNextReceiptIDOnEmptyLedger(t *testing.T) {
	f := newFixture(t)
	id, err := f.svc.NextReceiptID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestWriteReceiptSharesIDAndTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 14, 2, 10, 0, time.Local)

	id, err := f.svc.WriteReceipt(ctx, sale("Walk-in", at,
		line(1, "Milk", 2, "16.99", "33.98"),
		line(2, "Bread", 1, "30.00", "30.00"),
	))
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	next, err := f.svc.NextReceiptID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	raw, err := os.ReadFile(f.receiptsPath)
	require.NoError(t, err)
	assert.Equal(t,
		"1,Walk-in,2024-05-01 14:02:10,1,Milk,2,16.99,33.98\n"+
			"1,Walk-in,2024-05-01 14:02:10,2,Bread,1,30.00,30.00\n",
		string(raw))

	second, err := f.svc.WriteReceipt(ctx, sale("Asha", at.Add(time.Minute), line(1, "Milk", 1, "16.99", "16.99")))
	require.NoError(t, err)
	assert.Equal(t, 2, second)
}

func TestWriteSalesItemsFormat(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

	require.NoError(t, f.svc.WriteSalesItems(context.Background(), sale("x", at, line(7, "Tea, green", 3, "4.00", "12.00"))))

	raw, err := os.ReadFile(f.salesItemsPath)
	require.NoError(t, err)
	assert.Equal(t, "7,\"Tea, green\",3,4.00,12.00,2024-05-10 09:00:00\n", string(raw))

	rows, err := f.svc.SalesItems(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tea, green", rows[0].ProductName)
}

func TestEmptySaleIsRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.WriteReceipt(context.Background(), sale("x", time.Now()))
	assert.ErrorIs(t, err, ledgerdomain.ErrEmptySale)
	assert.ErrorIs(t, f.svc.WriteSalesItems(context.Background(), sale("x", time.Now())), ledgerdomain.ErrEmptySale)
}

func TestReceiptsSkipMalformedLines(t *testing.T) {
	f := newFixture(t)
	content := "1,Walk-in,2024-05-01 10:00:00,1,Milk,2,5.00,10.00\n" +
		"2,Walk-in,2024-05-01 10:05:00,1,Milk\n" +
		"garbage\n" +
		"7,Asha,2024-05-02 10:00:00,2,Bread,1,3.00,3.00\n"
	require.NoError(t, os.WriteFile(f.receiptsPath, []byte(content), 0o644))

	rows, err := f.svc.Receipts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].ReceiptID)
	assert.Equal(t, 7, rows[1].ReceiptID)

	next, err := f.svc.NextReceiptID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestUnquotedRowWithQuoteCharacterIsRead(t *testing.T) {
	f := newFixture(t)
	content := "7,Walk-in,2024-05-01 10:00:00,1,12\" Pizza,1,10.00,10.00\n"
	require.NoError(t, os.WriteFile(f.receiptsPath, []byte(content), 0o644))

	next, err := f.svc.NextReceiptID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	rows, err := f.svc.Receipts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12\" Pizza", rows[0].ProductName)
	assert.Equal(t, "10.00", rows[0].LineTotal.StringFixed(2))
}
