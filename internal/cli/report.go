package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	reportdomain "github.com/smallbiznis/retailpos/internal/report/domain"
	"github.com/urfave/cli/v3"
)

func (r *Runner) reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Sales reports from the ledgers",
		Commands: []*cli.Command{
			{
				Name:   "total",
				Usage:  "All-time income",
				Action: r.action(r.totalIncome),
			},
			{
				Name:      "daily",
				Usage:     "Income for one day",
				ArgsUsage: "<YYYY-MM-DD>",
				Action:    r.action(r.dailyIncome),
			},
			{
				Name:      "monthly",
				Usage:     "Income for one month",
				ArgsUsage: "<YYYY-MM>",
				Action:    r.action(r.monthlyIncome),
			},
			{
				Name:   "product",
				Usage:  "Sales of one product",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "code", Required: true}},
				Action: r.action(r.productWise),
			},
			{
				Name:   "top",
				Usage:  "Top selling products",
				Flags:  []cli.Flag{&cli.IntFlag{Name: "limit", Usage: "defaults to report.top_limit"}},
				Action: r.action(r.topSelling),
			},
		},
	}
}

func (r *Runner) totalIncome(ctx context.Context, _ *cli.Command, d Deps) error {
	income, err := d.Reports.TotalIncome(ctx)
	if err != nil {
		return err
	}
	r.printIncome(d, "total income", income)
	return nil
}

func (r *Runner) dailyIncome(ctx context.Context, cmd *cli.Command, d Deps) error {
	income, err := d.Reports.DailyIncome(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	r.printIncome(d, "income for "+income.Period, income)
	return nil
}

func (r *Runner) monthlyIncome(ctx context.Context, cmd *cli.Command, d Deps) error {
	income, err := d.Reports.MonthlyIncome(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	r.printIncome(d, "income for "+income.Period, income)
	return nil
}

func (r *Runner) printIncome(d Deps, label string, income reportdomain.Income) {
	r.printf("%s: %s (%d lines)\n", label, formatter(d).Format(income.Total), income.Rows)
}

func (r *Runner) productWise(ctx context.Context, cmd *cli.Command, d Deps) error {
	sales, err := d.Reports.ProductWise(ctx, cmd.Int("code"))
	if err != nil {
		return err
	}
	if len(sales.Rows) == 0 {
		r.printf("no sales for product %d\n", sales.Code)
		return nil
	}

	money := formatter(d)
	w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECEIPT\tDATE\tCUSTOMER\tQTY\tTOTAL")
	for _, row := range sales.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", row.ReceiptID, row.Timestamp, row.Customer, row.Quantity, money.Format(row.LineTotal))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	r.printf("product %d: %d sold, revenue %s\n", sales.Code, sales.Quantity, money.Format(sales.Revenue))
	return nil
}

func (r *Runner) topSelling(ctx context.Context, cmd *cli.Command, d Deps) error {
	ranks, err := d.Reports.TopSelling(ctx, cmd.Int("limit"))
	if err != nil {
		return err
	}
	if len(ranks) == 0 {
		r.printf("no sales recorded\n")
		return nil
	}

	money := formatter(d)
	w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCODE\tNAME\tQTY\tREVENUE")
	for i, rank := range ranks {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", i+1, rank.Code, rank.Name, rank.Quantity, money.Format(rank.Revenue))
	}
	return w.Flush()
}
