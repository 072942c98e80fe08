package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/catalog"
	"github.com/smallbiznis/retailpos/internal/checkout"
	"github.com/smallbiznis/retailpos/internal/clock"
	"github.com/smallbiznis/retailpos/internal/config"
	"github.com/smallbiznis/retailpos/internal/customer"
	"github.com/smallbiznis/retailpos/internal/ledger"
	"github.com/smallbiznis/retailpos/internal/observability"
	"github.com/smallbiznis/retailpos/internal/report"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestParseItems(t *testing.T) {
	items, err := parseItems([]string{"1:3", " 12 : 1 ", "1:2"})
	require.NoError(t, err)
	assert.Equal(t, []item{{Code: 1, Quantity: 3}, {Code: 12, Quantity: 1}, {Code: 1, Quantity: 2}}, items)

	for _, bad := range []string{"1", "a:1", "1:b", "0:1", "1:0", "1:-2", ""} {
		_, err := parseItems([]string{bad})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, bad)
	}

	_, err = parseItems(nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, exitNotFound, exitCode(apperror.New(apperror.KindNotFound, "product_not_found")))
	assert.Equal(t, exitInsufficientStock, exitCode(apperror.ErrInsufficientStock))
	assert.Equal(t, exitEmptyCart, exitCode(apperror.ErrEmptyCart))
	assert.Equal(t, exitIOUnavailable, exitCode(apperror.IO("open", "x", os.ErrPermission)))
	assert.Equal(t, exitInternal, exitCode(assert.AnError))

	assert.Equal(t, "not found (product_not_found)", describe(apperror.New(apperror.KindNotFound, "product_not_found")))
}

type harness struct {
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *Runner
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		AppName:     "retailpos",
		AppVersion:  "test",
		Environment: "test",
		Store:       config.StoreConfig{Name: "CODE_FUSION STORE"},
		Data: config.DataConfig{
			Dir:            dir,
			ProductsFile:   "products.txt",
			ReceiptsFile:   "receipts.txt",
			SalesItemsFile: "sales_items.txt",
			CustomersFile:  "customers.txt",
			BillsDir:       "bills",
		},
		Bill:      config.BillConfig{Formats: []string{config.BillFormatText}},
		Catalog:   config.CatalogConfig{Backend: config.BackendFile},
		Inventory: config.InventoryConfig{LowStockThreshold: 5},
		Report:    config.ReportConfig{TopLimit: 10},
		Log:       config.LogConfig{Level: "error", Format: "json"},
	}
	require.NoError(t, cfg.Validate())

	h := &harness{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.runner = NewRunner(h.stdout, h.stderr,
		fx.Supply(cfg),
		observability.Module,
		fx.Provide(func() (*snowflake.Node, error) { return snowflake.NewNode(1) }),
		clock.Module,
		catalog.Module,
		customer.Module,
		ledger.Module,
		bill.Module,
		checkout.Module,
		report.Module,
	)
	return h
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return h.runner.Main(context.Background(), append([]string{"retailpos"}, args...))
}

func TestSellAndReport(t *testing.T) {
	h := newHarness(t)

	require.Zero(t, h.run(t, "product", "add", "--code", "1", "--name", "Milk", "--price", "20", "--stock", "10", "--discount", "10", "--category", "Dairy"))
	assert.Contains(t, h.stdout.String(), "product 1 added")

	require.Zero(t, h.run(t, "customer", "register", "--name", "Asha", "--phone", "0800"))
	assert.Contains(t, h.stdout.String(), "customer 1 registered")

	require.Zero(t, h.run(t, "checkout", "--customer", "Asha", "--item", "1:3"), h.stderr.String())
	assert.Contains(t, h.stdout.String(), "receipt 1 for Asha")
	assert.NotContains(t, h.stdout.String(), "warning")

	bills, err := filepath.Glob(filepath.Join(h.dir, "bills", "bill_*.txt"))
	require.NoError(t, err)
	assert.Len(t, bills, 1)

	require.Zero(t, h.run(t, "report", "total"))
	assert.Contains(t, h.stdout.String(), "54.00")

	require.Zero(t, h.run(t, "product", "search", "milk"))
	assert.Contains(t, h.stdout.String(), "Milk")
	assert.Contains(t, h.stdout.String(), "7")

	require.Zero(t, h.run(t, "customer", "history", "asha"))
	assert.Contains(t, h.stdout.String(), "receipt 1")
}

func TestCheckoutPreviewWritesNothing(t *testing.T) {
	h := newHarness(t)
	require.Zero(t, h.run(t, "product", "add", "--code", "2", "--name", "Bread", "--price", "30", "--stock", "5"))

	require.Zero(t, h.run(t, "checkout", "--item", "2:2", "--preview"))
	assert.Contains(t, h.stdout.String(), "STEADY RECEIPT")
	assert.Contains(t, h.stdout.String(), "Walk-in")

	_, err := os.Stat(filepath.Join(h.dir, "receipts.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestFailuresExitNonZero(t *testing.T) {
	h := newHarness(t)
	require.Zero(t, h.run(t, "product", "add", "--code", "2", "--name", "Bread", "--price", "30", "--stock", "1"))

	assert.Equal(t, exitInsufficientStock, h.run(t, "checkout", "--item", "2:5"))
	assert.Contains(t, h.stderr.String(), "insufficient stock")

	assert.Equal(t, exitNotFound, h.run(t, "product", "delete", "--code", "99"))
	assert.Equal(t, exitInvalidInput, h.run(t, "report", "monthly", "2024"))
	assert.Equal(t, exitInvalidInput, h.run(t, "product", "add", "--code", "3", "--name", "Jam", "--price", "abc"))
}
