package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/cart"
	"github.com/smallbiznis/retailpos/pkg/apperror"
)

// Pipeline steps that can fail without aborting a checkout.
const (
	StepBill       = "bill"
	StepReceipts   = "receipts"
	StepSalesItems = "sales_items"
	StepStock      = "stock"
)

// Warning records a step that failed after the checkout had started
// writing. Earlier steps are never rolled back.
type Warning struct {
	Step string
	Err  error
}

func (w Warning) Error() string {
	return w.Step + ": " + w.Err.Error()
}

// Result describes a finalized checkout. ReceiptID is zero when the receipt
// ledger could not be written.
type Result struct {
	CheckoutID snowflake.ID
	ReceiptID  int
	Customer   string
	Timestamp  time.Time
	Lines      []cart.Line
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Net        decimal.Decimal
	BillPaths  []string
	Warnings   []Warning
}

// Partial reports whether any step failed.
func (r *Result) Partial() bool {
	return len(r.Warnings) > 0
}

type Service interface {
	// Finalize turns the cart into a bill, ledger rows and a stock update, in
	// that order, and clears the cart.
	Finalize(ctx context.Context, c *cart.Cart) (*Result, error)
	// Preview builds the bill for the cart as it stands, without side effects.
	Preview(c *cart.Cart) bill.Bill
}

var ErrEmptyCart = apperror.New(apperror.KindEmptyCart, "empty_cart")
