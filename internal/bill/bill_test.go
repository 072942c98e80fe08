package bill

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleBill() Bill {
	return Bill{
		Customer:  "Walk-in",
		Timestamp: time.Date(2024, 5, 1, 14, 2, 10, 0, time.Local),
		Lines: []Line{
			{Code: 101, Name: "Milk 1L", Quantity: 2, UnitPrice: decimal.RequireFromString("16.99"), LineTotal: decimal.RequireFromString("33.98")},
			{Code: 7, Name: "Bread", Quantity: 1, UnitPrice: decimal.RequireFromString("30"), LineTotal: decimal.RequireFromString("30")},
		},
		Subtotal: decimal.RequireFromString("63.98"),
		Discount: decimal.Zero,
		Net:      decimal.RequireFromString("63.98"),
	}
}

func TestTextRendererLayout(t *testing.T) {
	out, err := TextRenderer{}.Render(context.Background(), sampleBill())
	require.NoError(t, err)

	want := strings.Join([]string{
		"==================== CODE_FUSION STORE BILL ====================",
		"Date: 2024-05-01 14:02:10",
		"Customer: Walk-in",
		strings.Repeat("-", 53),
		"Code   Item                     Qty       Unit   Subtotal",
		strings.Repeat("-", 53),
		"101    Milk 1L                    2      16.99      33.98",
		"7      Bread                      1      30.00      30.00",
		strings.Repeat("-", 53),
		strings.Repeat(" ", 43) + "Subtotal:      63.98",
		strings.Repeat(" ", 43) + "Discount:       0.00",
		strings.Repeat(" ", 42) + "Net Total:      63.98",
		strings.Repeat("=", 53),
		" THANK YOU! VISIT AGAIN",
		strings.Repeat("=", 53),
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestPreviewUsesSteadyHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, sampleBill()))
	assert.Contains(t, buf.String(), "-------------------- STEADY RECEIPT --------------------\n")
	assert.Contains(t, buf.String(), "Customer: Walk-in\n")
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 4, 2, 9, 0, time.Local)
	assert.Equal(t, "bill_20240501_040209.txt", FileName(ts, ".txt"))
}

func TestWriterWritesEveryFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bills")
	w := New(dir, "Corner Shop", zap.NewNop(), nil, TextRenderer{}, PDFRenderer{Formatter: pricing.NewFormatter("$")})

	paths, err := w.Write(context.Background(), sampleBill())
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "bill_20240501_140210.txt"), paths[0])
	assert.Equal(t, filepath.Join(dir, "bill_20240501_140210.pdf"), paths[1])

	text, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "==================== CORNER SHOP BILL"))

	pdf, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestWriterReportsUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "bills")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	w := New(blocker, "", zap.NewNop(), nil, TextRenderer{})
	paths, err := w.Write(context.Background(), sampleBill())
	require.Error(t, err)
	assert.Empty(t, paths)
	assert.Equal(t, apperror.KindIOUnavailable, apperror.KindOf(err))
}
