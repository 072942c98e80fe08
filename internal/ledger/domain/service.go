package domain

import (
	"context"

	"github.com/smallbiznis/retailpos/pkg/apperror"
)

type Service interface {
	// NextReceiptID scans the receipt ledger and returns max+1, or 1 when
	// the ledger is missing or empty.
	NextReceiptID(ctx context.Context) (int, error)
	// WriteReceipt allocates the next receipt id and appends one receipt row
	// per sale line.
	WriteReceipt(ctx context.Context, sale Sale) (int, error)
	// WriteSalesItems appends one sales-item row per sale line.
	WriteSalesItems(ctx context.Context, sale Sale) error
	Receipts(ctx context.Context) ([]ReceiptRecord, error)
	SalesItems(ctx context.Context) ([]SalesItemRecord, error)
}

var ErrEmptySale = apperror.New(apperror.KindInvalidInput, "empty_sale")
