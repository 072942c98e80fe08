// Package bill renders and stores the per-transaction bill artifact.
package bill

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultStoreName = "CODE_FUSION STORE"

// Line is one billed product.
type Line struct {
	Code      int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Bill is everything printed on a bill.
type Bill struct {
	StoreName string
	Customer  string
	Timestamp time.Time
	Lines     []Line
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Net       decimal.Decimal
}

// Renderer turns a bill into one file format.
type Renderer interface {
	Format() string
	Extension() string
	Render(ctx context.Context, b Bill) ([]byte, error)
}

func (b Bill) storeName() string {
	name := strings.TrimSpace(b.StoreName)
	if name == "" {
		return DefaultStoreName
	}
	return name
}

// FileName is bill_<YYYYMMDD>_<HHMMSS> plus the renderer extension.
func FileName(ts time.Time, ext string) string {
	return "bill_" + ts.Format("20060102_150405") + ext
}
