package bill

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
)

// PDFRenderer produces a printable rendition of the same bill.
type PDFRenderer struct {
	Formatter pricing.Formatter
}

func (PDFRenderer) Format() string    { return "pdf" }
func (PDFRenderer) Extension() string { return ".pdf" }

func (r PDFRenderer) Render(ctx context.Context, b Bill) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, strings.ToUpper(b.storeName())+" BILL", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(14,
		col.New(8).Add(
			text.New("Date: "+ledgerdomain.FormatTimestamp(b.Timestamp), props.Text{Top: 0}),
			text.New("Customer: "+b.Customer, props.Text{Top: 5}),
		),
		col.New(4),
	)

	m.AddRow(10,
		text.NewCol(2, "Code", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, l := range b.Lines {
		m.AddRow(8,
			text.NewCol(2, strconv.Itoa(l.Code), props.Text{Size: 9}),
			text.NewCol(4, l.Name, props.Text{Size: 9}),
			text.NewCol(2, strconv.Itoa(l.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Formatter.Format(l.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Formatter.Format(l.LineTotal), props.Text{Size: 9, Align: align.Right}),
		)
	}

	for _, total := range []struct {
		label  string
		amount string
		style  fontstyle.Type
	}{
		{"Subtotal", r.Formatter.Format(b.Subtotal), fontstyle.Normal},
		{"Discount", r.Formatter.Format(b.Discount), fontstyle.Normal},
		{"Net Total", r.Formatter.Format(b.Net), fontstyle.Bold},
	} {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, total.label, props.Text{Size: 9, Style: total.style}),
			text.NewCol(2, total.amount, props.Text{Size: 9, Style: total.style, Align: align.Right}),
		)
	}

	m.AddRow(16,
		text.NewCol(12, "THANK YOU! VISIT AGAIN", props.Text{
			Top:   6,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate bill pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
