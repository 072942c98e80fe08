package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	customerdomain "github.com/smallbiznis/retailpos/internal/customer/domain"
	"github.com/urfave/cli/v3"
)

func (r *Runner) customerCommand() *cli.Command {
	return &cli.Command{
		Name:  "customer",
		Usage: "Manage customers",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a customer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "address"},
				},
				Action: r.action(r.registerCustomer),
			},
			{
				Name:  "update",
				Usage: "Update contact details of every customer with this name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "address"},
				},
				Action: r.action(r.updateCustomer),
			},
			{
				Name:      "search",
				Usage:     "Search by id, name or phone",
				ArgsUsage: "<query>",
				Action:    r.action(r.searchCustomers),
			},
			{
				Name:   "list",
				Usage:  "List every customer",
				Action: r.action(r.listCustomers),
			},
			{
				Name:      "history",
				Usage:     "Show the receipts of a customer",
				ArgsUsage: "<name>",
				Action:    r.action(r.customerHistory),
			},
		},
	}
}

func (r *Runner) registerCustomer(ctx context.Context, cmd *cli.Command, d Deps) error {
	c, err := d.Customers.Register(ctx, customerdomain.RegisterRequest{
		Name:    cmd.String("name"),
		Phone:   cmd.String("phone"),
		Email:   cmd.String("email"),
		Address: cmd.String("address"),
	})
	if err != nil {
		return err
	}
	r.printf("customer %d registered\n", c.ID)
	return nil
}

func (r *Runner) updateCustomer(ctx context.Context, cmd *cli.Command, d Deps) error {
	req := customerdomain.UpdateRequest{Name: cmd.String("name")}
	for flag, target := range map[string]**string{
		"phone":   &req.Phone,
		"email":   &req.Email,
		"address": &req.Address,
	} {
		if cmd.IsSet(flag) {
			value := cmd.String(flag)
			*target = &value
		}
	}

	updated, err := d.Customers.Update(ctx, req)
	if err != nil {
		return err
	}
	r.printf("%d customer(s) updated\n", len(updated))
	return r.printCustomers(updated)
}

func (r *Runner) searchCustomers(ctx context.Context, cmd *cli.Command, d Deps) error {
	customers, err := d.Customers.Search(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	return r.printCustomers(customers)
}

func (r *Runner) listCustomers(ctx context.Context, _ *cli.Command, d Deps) error {
	customers, err := d.Customers.List(ctx)
	if err != nil {
		return err
	}
	return r.printCustomers(customers)
}

func (r *Runner) customerHistory(ctx context.Context, cmd *cli.Command, d Deps) error {
	history, err := d.Reports.CustomerHistory(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	if len(history.Receipts) == 0 {
		r.printf("no receipts for %s\n", history.Customer)
		return nil
	}

	money := formatter(d)
	for _, receipt := range history.Receipts {
		r.printf("receipt %d  %s\n", receipt.ReceiptID, receipt.Timestamp)
		w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
		for _, line := range receipt.Lines {
			fmt.Fprintf(w, "  %d\t%s\t%d\t%s\t%s\n",
				line.ProductCode, line.ProductName, line.Quantity, money.Format(line.UnitPrice), money.Format(line.LineTotal))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		r.printf("  total %s\n", money.Format(receipt.Total))
	}
	r.printf("lifetime total %s\n", money.Format(history.Total))
	return nil
}

func (r *Runner) printCustomers(customers []customerdomain.Customer) error {
	if len(customers) == 0 {
		r.printf("no customers\n")
		return nil
	}
	w := tabwriter.NewWriter(r.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL\tADDRESS")
	for _, c := range customers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email, c.Address)
	}
	return w.Flush()
}
