package service

import (
	"context"

	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	obsmetrics "github.com/smallbiznis/retailpos/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	ledgerReceipts   = "receipts"
	ledgerSalesItems = "sales_items"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Repo       ledgerdomain.Repository
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	repo       ledgerdomain.Repository
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		log:        p.Log.Named("ledger.service"),
		repo:       p.Repo,
		obsMetrics: p.ObsMetrics,
	}
}

// NextReceiptID is an O(n) scan per call. Without a persisted counter two
// concurrent writers could allocate the same id.
func (s *Service) NextReceiptID(ctx context.Context) (int, error) {
	last, err := s.repo.MaxReceiptID(ctx)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (s *Service) WriteReceipt(ctx context.Context, sale ledgerdomain.Sale) (int, error) {
	if len(sale.Lines) == 0 {
		return 0, ledgerdomain.ErrEmptySale
	}
	receiptID, err := s.NextReceiptID(ctx)
	if err != nil {
		return 0, err
	}

	ts := ledgerdomain.FormatTimestamp(sale.At)
	rows := make([]ledgerdomain.ReceiptRecord, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		rows = append(rows, ledgerdomain.ReceiptRecord{
			ReceiptID:   receiptID,
			Customer:    sale.Customer,
			Timestamp:   ts,
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	if err := s.repo.AppendReceipts(ctx, rows); err != nil {
		return 0, err
	}

	s.obsMetrics.RecordLedgerRows(ledgerReceipts, len(rows))
	s.log.Debug("receipt rows appended",
		zap.Int("receipt_id", receiptID),
		zap.Int("rows", len(rows)),
	)
	return receiptID, nil
}

func (s *Service) WriteSalesItems(ctx context.Context, sale ledgerdomain.Sale) error {
	if len(sale.Lines) == 0 {
		return ledgerdomain.ErrEmptySale
	}

	ts := ledgerdomain.FormatTimestamp(sale.At)
	rows := make([]ledgerdomain.SalesItemRecord, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		rows = append(rows, ledgerdomain.SalesItemRecord{
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
			Timestamp:   ts,
		})
	}
	if err := s.repo.AppendSalesItems(ctx, rows); err != nil {
		return err
	}

	s.obsMetrics.RecordLedgerRows(ledgerSalesItems, len(rows))
	return nil
}

func (s *Service) Receipts(ctx context.Context) ([]ledgerdomain.ReceiptRecord, error) {
	var rows []ledgerdomain.ReceiptRecord
	stats, err := s.repo.ScanReceipts(ctx, func(row ledgerdomain.ReceiptRecord) {
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	s.recordSkipped(ledgerReceipts, stats)
	return rows, nil
}

func (s *Service) SalesItems(ctx context.Context) ([]ledgerdomain.SalesItemRecord, error) {
	var rows []ledgerdomain.SalesItemRecord
	stats, err := s.repo.ScanSalesItems(ctx, func(row ledgerdomain.SalesItemRecord) {
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	s.recordSkipped(ledgerSalesItems, stats)
	return rows, nil
}

func (s *Service) recordSkipped(ledger string, stats ledgerdomain.ScanStats) {
	if stats.Skipped == 0 {
		return
	}
	s.obsMetrics.RecordSkippedLines(ledger, stats.Skipped)
	s.log.Debug("skipped malformed ledger lines",
		zap.String("ledger", ledger),
		zap.Int("skipped", stats.Skipped),
		zap.Int("rows", stats.Rows),
	)
}
