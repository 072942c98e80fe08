package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/cart"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/urfave/cli/v3"
)

type item struct {
	Code     int
	Quantity int
}

func (r *Runner) checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Sell items to a customer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "customer", Usage: "customer name, blank for walk-in"},
			&cli.StringSliceFlag{Name: "item", Required: true, Usage: "code:qty, repeatable"},
			&cli.BoolFlag{Name: "preview", Usage: "print the receipt without finalizing"},
		},
		Action: r.action(r.checkout),
	}
}

func (r *Runner) checkout(ctx context.Context, cmd *cli.Command, d Deps) error {
	items, err := parseItems(cmd.StringSlice("item"))
	if err != nil {
		return err
	}

	c := cart.New(cmd.String("customer"), d.Products)
	for _, it := range items {
		if _, err := c.Add(ctx, it.Code, it.Quantity); err != nil {
			return err
		}
	}

	if cmd.Bool("preview") {
		return bill.WritePreview(r.Stdout, d.Checkout.Preview(c))
	}

	res, err := d.Checkout.Finalize(ctx, c)
	if err != nil {
		return err
	}

	money := formatter(d)
	r.printf("receipt %d for %s\n", res.ReceiptID, res.Customer)
	r.printf("subtotal %s  discount %s  net %s\n",
		money.Format(res.Subtotal), money.Format(res.Discount), money.Format(res.Net))
	for _, path := range res.BillPaths {
		r.printf("bill written to %s\n", path)
	}
	for _, w := range res.Warnings {
		r.printf("warning: %s\n", w.Error())
	}
	return nil
}

// parseItems reads code:qty pairs. Repeated codes are kept; the cart merges them.
func parseItems(raw []string) ([]item, error) {
	if len(raw) == 0 {
		return nil, apperror.Invalid("at least one --item is required")
	}
	items := make([]item, 0, len(raw))
	for _, entry := range raw {
		codePart, qtyPart, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			return nil, apperror.Invalid("item %q must be code:qty", entry)
		}
		code, err := strconv.Atoi(strings.TrimSpace(codePart))
		if err != nil || code <= 0 {
			return nil, apperror.Invalid("item %q has an invalid code", entry)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyPart))
		if err != nil || qty <= 0 {
			return nil, apperror.Invalid("item %q has an invalid quantity", entry)
		}
		items = append(items, item{Code: code, Quantity: qty})
	}
	return items, nil
}
