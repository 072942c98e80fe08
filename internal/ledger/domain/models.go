package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the local wall-clock format stored in both ledgers.
// Reports filter on its literal prefixes ("2024-05-01", "2024-05").
const TimestampLayout = "2006-01-02 15:04:05"

// ReceiptRecord is one customer-facing receipt row. Every row written by one
// checkout shares ReceiptID and Timestamp.
type ReceiptRecord struct {
	ReceiptID   int
	Customer    string
	Timestamp   string
	ProductCode int
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// SalesItemRecord is the product-centric view of a sold line.
type SalesItemRecord struct {
	ProductCode int
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Timestamp   string
}

// SaleLine is one priced line handed to the ledger by checkout.
type SaleLine struct {
	ProductCode int
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Sale is a finalized cart ready to be recorded.
type Sale struct {
	Customer string
	At       time.Time
	Lines    []SaleLine
}

// FormatTimestamp renders t in the ledger layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
