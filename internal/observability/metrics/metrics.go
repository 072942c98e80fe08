package metrics

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures metric export.
type Config struct {
	ServiceName string
	// Textfile, when set, receives the registry in node_exporter textfile
	// format on shutdown. A CLI run is too short-lived to be scraped.
	Textfile string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	registry *prometheus.Registry

	checkouts        *prometheus.CounterVec
	checkoutRevenue  prometheus.Counter
	ledgerRows       *prometheus.CounterVec
	ledgerSkipped    *prometheus.CounterVec
	reportRuns       *prometheus.CounterVec
	billFailures     *prometheus.CounterVec
	stockAdjustments prometheus.Counter
}

// NewRegistry returns a private registry so runs never pick up default collectors.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// New registers the domain instruments on the registry.
func New(cfg Config, registry *prometheus.Registry) (*Metrics, error) {
	namespace := normalizeNamespace(cfg.ServiceName)

	m := &Metrics{
		registry: registry,
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Finalized checkouts by outcome.",
		}, []string{"outcome"}),
		checkoutRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_revenue_total",
			Help:      "Net total of finalized checkouts.",
		}),
		ledgerRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_rows_appended_total",
			Help:      "Rows appended to a ledger.",
		}, []string{"ledger"}),
		ledgerSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_lines_skipped_total",
			Help:      "Malformed ledger lines skipped while reading.",
		}, []string{"ledger"}),
		reportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_runs_total",
			Help:      "Report aggregations executed.",
		}, []string{"report"}),
		billFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_write_failures_total",
			Help:      "Bill artifacts that could not be written.",
		}, []string{"format"}),
		stockAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_sold_total",
			Help:      "Units decremented from catalog stock by checkouts.",
		}),
	}

	collectors := []prometheus.Collector{
		m.checkouts,
		m.checkoutRevenue,
		m.ledgerRows,
		m.ledgerSkipped,
		m.reportRuns,
		m.billFailures,
		m.stockAdjustments,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RegisterTextfileExport writes the registry to cfg.Textfile when the app stops.
func RegisterTextfileExport(lc fx.Lifecycle, cfg Config, registry *prometheus.Registry, log *zap.Logger) {
	path := strings.TrimSpace(cfg.Textfile)
	if path == "" || lc == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			if err := prometheus.WriteToTextfile(path, registry); err != nil && log != nil {
				log.Warn("failed to write metrics textfile", zap.String("path", path), zap.Error(err))
			}
			return nil
		},
	})
}

// RecordCheckout counts a finalize call by outcome (ok, partial, rejected).
func (m *Metrics) RecordCheckout(outcome string, netTotal float64) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
	if netTotal > 0 {
		m.checkoutRevenue.Add(netTotal)
	}
}

// RecordLedgerRows counts appended rows for a ledger.
func (m *Metrics) RecordLedgerRows(ledger string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ledgerRows.WithLabelValues(normalizeLabel(ledger)).Add(float64(n))
}

// RecordSkippedLines counts malformed lines dropped during a scan.
func (m *Metrics) RecordSkippedLines(ledger string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ledgerSkipped.WithLabelValues(normalizeLabel(ledger)).Add(float64(n))
}

// RecordReportRun counts a report aggregation.
func (m *Metrics) RecordReportRun(report string) {
	if m == nil {
		return
	}
	m.reportRuns.WithLabelValues(normalizeLabel(report)).Inc()
}

// RecordBillFailure counts a bill artifact that could not be written.
func (m *Metrics) RecordBillFailure(format string) {
	if m == nil {
		return
	}
	m.billFailures.WithLabelValues(normalizeLabel(format)).Inc()
}

// RecordUnitsSold counts units removed from stock.
func (m *Metrics) RecordUnitsSold(units int) {
	if m == nil || units <= 0 {
		return
	}
	m.stockAdjustments.Add(float64(units))
}

func normalizeNamespace(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "retailpos"
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
}

func normalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	return value
}
