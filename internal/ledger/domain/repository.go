package domain

import (
	"context"
)

// ScanStats reports how many rows were read and how many malformed lines
// were dropped.
type ScanStats struct {
	Rows    int
	Skipped int
}

// Repository appends to and replays the receipt and sales-item ledgers. Rows
// are never updated or deleted.
type Repository interface {
	// MaxReceiptID returns the highest receipt id on record, or 0.
	MaxReceiptID(ctx context.Context) (int, error)
	AppendReceipts(ctx context.Context, rows []ReceiptRecord) error
	AppendSalesItems(ctx context.Context, rows []SalesItemRecord) error
	ScanReceipts(ctx context.Context, fn func(ReceiptRecord)) (ScanStats, error)
	ScanSalesItems(ctx context.Context, fn func(SalesItemRecord)) (ScanStats, error)
}
