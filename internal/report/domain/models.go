package domain

import (
	"github.com/shopspring/decimal"
	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
)

// Income is the revenue of the receipt rows that matched a period.
type Income struct {
	// Period is the timestamp prefix the rows were filtered on. Empty for
	// the all-time total.
	Period string
	Rows   int
	Total  decimal.Decimal
}

// ProductSales is the receipt history of one product code.
type ProductSales struct {
	Code     int
	Rows     []ledgerdomain.ReceiptRecord
	Quantity int
	Revenue  decimal.Decimal
}

// ProductRank is one entry of the top-selling ranking.
type ProductRank struct {
	Code     int
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// CustomerReceipt groups the rows of one receipt for a customer.
type CustomerReceipt struct {
	ReceiptID int
	Timestamp string
	Lines     []ledgerdomain.ReceiptRecord
	Total     decimal.Decimal
}

// CustomerHistory lists a customer's receipts in ledger order.
type CustomerHistory struct {
	Customer string
	Receipts []CustomerReceipt
	Total    decimal.Decimal
}
