// Package pricing holds the two-decimal money arithmetic shared by the cart,
// ledgers and reports.
package pricing

import (
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// UnitPriceAfterDiscount returns price * (100 - pct) / 100 rounded to cents.
func UnitPriceAfterDiscount(price, discountPercent decimal.Decimal) decimal.Decimal {
	return Round2(price.Mul(hundred.Sub(discountPercent)).Div(hundred))
}

// LineTotal returns quantity * unit rounded to cents.
func LineTotal(quantity int, unit decimal.Decimal) decimal.Decimal {
	return Round2(unit.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Fixed renders an amount with exactly two decimals and no grouping, the
// format used in ledger files and bills.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse reads a decimal amount from a record field.
func Parse(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

// Formatter renders amounts for console output with a currency symbol and
// thousands grouping.
type Formatter struct {
	ac accounting.Accounting
}

func NewFormatter(symbol string) Formatter {
	return Formatter{ac: accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}}
}

func (f Formatter) Format(d decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(d)
}
