package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/catalog"
	"github.com/smallbiznis/retailpos/internal/checkout"
	"github.com/smallbiznis/retailpos/internal/cli"
	"github.com/smallbiznis/retailpos/internal/clock"
	"github.com/smallbiznis/retailpos/internal/config"
	"github.com/smallbiznis/retailpos/internal/customer"
	"github.com/smallbiznis/retailpos/internal/ledger"
	"github.com/smallbiznis/retailpos/internal/observability"
	"github.com/smallbiznis/retailpos/internal/report"
	"go.uber.org/fx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := cli.NewRunner(os.Stdout, os.Stderr,
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,

		// Functional Domains
		catalog.Module,
		customer.Module,
		ledger.Module,
		bill.Module,
		checkout.Module,
		report.Module,
	)

	code := runner.Main(ctx, os.Args)
	stop()
	os.Exit(code)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
