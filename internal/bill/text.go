package bill

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
)

var (
	billRule    = strings.Repeat("-", 53)
	billBorder  = strings.Repeat("=", 53)
	previewRule = strings.Repeat("-", 56)
)

// TextRenderer produces the fixed-width plain-text bill.
type TextRenderer struct{}

func (TextRenderer) Format() string    { return "text" }
func (TextRenderer) Extension() string { return ".txt" }

func (TextRenderer) Render(_ context.Context, b Bill) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "==================== %s BILL ====================\n", strings.ToUpper(b.storeName()))
	fmt.Fprintf(&buf, "Date: %s\n", ledgerdomain.FormatTimestamp(b.Timestamp))
	fmt.Fprintf(&buf, "Customer: %s\n", b.Customer)
	buf.WriteString(billRule + "\n")
	writeTable(&buf, b, billRule)
	writeTotals(&buf, b)
	buf.WriteString(billBorder + "\n")
	buf.WriteString(" THANK YOU! VISIT AGAIN\n")
	buf.WriteString(billBorder + "\n")
	return buf.Bytes(), nil
}

// WritePreview prints the on-screen receipt shown while the cart is open.
func WritePreview(w io.Writer, b Bill) error {
	var buf bytes.Buffer
	buf.WriteString("\n-------------------- STEADY RECEIPT --------------------\n")
	fmt.Fprintf(&buf, "Customer: %s\n", b.Customer)
	fmt.Fprintf(&buf, "Date: %s\n", ledgerdomain.FormatTimestamp(b.Timestamp))
	buf.WriteString(previewRule + "\n")
	writeTable(&buf, b, previewRule)
	writeTotals(&buf, b)
	buf.WriteString(previewRule + "\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeTable(buf *bytes.Buffer, b Bill, rule string) {
	fmt.Fprintf(buf, "%-6s %-22s %5s %10s %10s\n", "Code", "Item", "Qty", "Unit", "Subtotal")
	buf.WriteString(rule + "\n")
	for _, l := range b.Lines {
		fmt.Fprintf(buf, "%-6d %-22s %5d %10s %10s\n",
			l.Code, l.Name, l.Quantity, pricing.Fixed(l.UnitPrice), pricing.Fixed(l.LineTotal))
	}
	buf.WriteString(rule + "\n")
}

func writeTotals(buf *bytes.Buffer, b Bill) {
	fmt.Fprintf(buf, "%52s %10s\n", "Subtotal:", pricing.Fixed(b.Subtotal))
	fmt.Fprintf(buf, "%52s %10s\n", "Discount:", pricing.Fixed(b.Discount))
	fmt.Fprintf(buf, "%52s %10s\n", "Net Total:", pricing.Fixed(b.Net))
}
