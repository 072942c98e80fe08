package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordersUpdateCounters(t *testing.T) {
	registry := NewRegistry()
	m, err := New(Config{ServiceName: "retailpos"}, registry)
	require.NoError(t, err)

	m.RecordCheckout("ok", 120.5)
	m.RecordCheckout("OK", 0)
	m.RecordLedgerRows("receipts", 3)
	m.RecordSkippedLines("sales_items", 2)
	m.RecordSkippedLines("sales_items", 0)
	m.RecordReportRun("top_selling")
	m.RecordBillFailure("pdf")
	m.RecordUnitsSold(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkouts.WithLabelValues("ok")))
	assert.Equal(t, 120.5, testutil.ToFloat64(m.checkoutRevenue))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ledgerRows.WithLabelValues("receipts")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerSkipped.WithLabelValues("sales_items")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportRuns.WithLabelValues("top_selling")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.billFailures.WithLabelValues("pdf")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.stockAdjustments))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCheckout("ok", 1)
		m.RecordLedgerRows("receipts", 1)
		m.RecordSkippedLines("receipts", 1)
		m.RecordReportRun("total_income")
		m.RecordBillFailure("text")
		m.RecordUnitsSold(1)
	})
}

func TestNamespaceNormalization(t *testing.T) {
	registry := NewRegistry()
	m, err := New(Config{ServiceName: "Retail-POS"}, registry)
	require.NoError(t, err)
	m.RecordReportRun("daily_income")

	path := filepath.Join(t.TempDir(), "retailpos.prom")
	require.NoError(t, prometheus.WriteToTextfile(path, registry))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `retail_pos_report_runs_total{report="daily_income"} 1`))
}
