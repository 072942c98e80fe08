package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/apperror"
	"github.com/urfave/cli/v3"
)

func (r *Runner) productCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "Manage the product catalog",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a product",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "price", Required: true},
					&cli.IntFlag{Name: "stock"},
					&cli.StringFlag{Name: "discount", Value: "0", Usage: "discount percent"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "subcategory"},
				},
				Action: r.action(r.addProduct),
			},
			{
				Name:   "list",
				Usage:  "List every product",
				Action: r.action(r.listProducts),
			},
			{
				Name:      "category",
				Usage:     "List products by category and subcategory (\"all\" matches any)",
				ArgsUsage: "[category] [subcategory]",
				Action:    r.action(r.listByCategory),
			},
			{
				Name:  "update",
				Usage: "Update the flags that are given; everything else is kept",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "price"},
					&cli.IntFlag{Name: "stock"},
					&cli.StringFlag{Name: "discount"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "subcategory"},
				},
				Action: r.action(r.updateProduct),
			},
			{
				Name:   "delete",
				Usage:  "Delete a product",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "code", Required: true}},
				Action: r.action(r.deleteProduct),
			},
			{
				Name:   "low-stock",
				Usage:  "List products below the low-stock threshold",
				Action: r.action(r.lowStock),
			},
			{
				Name:      "search",
				Usage:     "Search by code or name",
				ArgsUsage: "<code|name>",
				Action:    r.action(r.searchProducts),
			},
		},
	}
}

func (r *Runner) addProduct(ctx context.Context, cmd *cli.Command, d Deps) error {
	price, err := parseAmount("price", cmd.String("price"))
	if err != nil {
		return err
	}
	discount, err := parseAmount("discount", cmd.String("discount"))
	if err != nil {
		return err
	}

	p, err := d.Catalog.Add(ctx, catalogdomain.AddRequest{
		Code:            cmd.Int("code"),
		Name:            cmd.String("name"),
		Price:           price,
		Stock:           cmd.Int("stock"),
		DiscountPercent: discount,
		Category:        cmd.String("category"),
		Subcategory:     cmd.String("subcategory"),
	})
	if err != nil {
		return err
	}
	r.printf("product %d added\n", p.Code)
	return nil
}

func (r *Runner) listProducts(ctx context.Context, _ *cli.Command, d Deps) error {
	products, err := d.Catalog.List(ctx)
	if err != nil {
		return err
	}
	return r.printProducts(d, products)
}

func (r *Runner) listByCategory(ctx context.Context, cmd *cli.Command, d Deps) error {
	products, err := d.Catalog.ListByCategory(ctx, catalogdomain.CategoryFilter{
		Category:    cmd.Args().Get(0),
		Subcategory: cmd.Args().Get(1),
	})
	if err != nil {
		return err
	}
	return r.printProducts(d, products)
}

func (r *Runner) updateProduct(ctx context.Context, cmd *cli.Command, d Deps) error {
	req := catalogdomain.UpdateRequest{Code: cmd.Int("code")}
	if cmd.IsSet("name") {
		name := cmd.String("name")
		req.Name = &name
	}
	if cmd.IsSet("price") {
		price, err := parseAmount("price", cmd.String("price"))
		if err != nil {
			return err
		}
		req.Price = &price
	}
	if cmd.IsSet("stock") {
		stock := cmd.Int("stock")
		req.Stock = &stock
	}
	if cmd.IsSet("discount") {
		discount, err := parseAmount("discount", cmd.String("discount"))
		if err != nil {
			return err
		}
		req.DiscountPercent = &discount
	}
	if cmd.IsSet("category") {
		category := cmd.String("category")
		req.Category = &category
	}
	if cmd.IsSet("subcategory") {
		subcategory := cmd.String("subcategory")
		req.Subcategory = &subcategory
	}

	p, err := d.Catalog.Update(ctx, req)
	if err != nil {
		return err
	}
	r.printf("product %d updated\n", p.Code)
	return r.printProducts(d, []catalogdomain.Product{*p})
}

func (r *Runner) deleteProduct(ctx context.Context, cmd *cli.Command, d Deps) error {
	code := cmd.Int("code")
	if err := d.Catalog.Delete(ctx, code); err != nil {
		return err
	}
	r.printf("product %d deleted\n", code)
	return nil
}

func (r *Runner) lowStock(ctx context.Context, _ *cli.Command, d Deps) error {
	products, err := d.Catalog.LowStock(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		r.printf("no products below threshold %d\n", d.Config.Inventory.LowStockThreshold)
		return nil
	}
	return r.printProducts(d, products)
}

func (r *Runner) searchProducts(ctx context.Context, cmd *cli.Command, d Deps) error {
	products, err := d.Catalog.Search(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	return r.printProducts(d, products)
}

func (r *Runner) printProducts(d Deps, products []catalogdomain.Product) error {
	if len(products) == 0 {
		r.printf("no products\n")
		return nil
	}
	money := formatter(d)
	w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tPRICE\tSTOCK\tDISCOUNT\tCATEGORY\tSUBCATEGORY")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s%%\t%s\t%s\n",
			p.Code, p.Name, money.Format(p.Price), p.Stock, pricing.Fixed(p.DiscountPercent), p.Category, p.Subcategory)
	}
	return w.Flush()
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := pricing.Parse(raw)
	if err != nil {
		return decimal.Zero, apperror.Invalid("%s %q is not a number", field, raw)
	}
	return d, nil
}
