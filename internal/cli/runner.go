package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/smallbiznis/retailpos/internal/catalog/domain"
	checkoutdomain "github.com/smallbiznis/retailpos/internal/checkout/domain"
	"github.com/smallbiznis/retailpos/internal/config"
	customerdomain "github.com/smallbiznis/retailpos/internal/customer/domain"
	"github.com/smallbiznis/retailpos/internal/observability/logger"
	"github.com/smallbiznis/retailpos/internal/pricing"
	reportdomain "github.com/smallbiznis/retailpos/internal/report/domain"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

// Deps are the services a command runs against.
type Deps struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Catalog   catalogdomain.Service
	Products  catalogdomain.Store
	Customers customerdomain.Service
	Checkout  checkoutdomain.Service
	Reports   reportdomain.Service
}

// Runner builds the command tree. Every invocation starts its own fx app
// from Options and stops it when the command returns, so metrics and logs
// are flushed per run.
type Runner struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Options []fx.Option
}

func NewRunner(stdout, stderr io.Writer, options ...fx.Option) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr, Options: options}
}

// Main runs args and returns the process exit code.
func (r *Runner) Main(ctx context.Context, args []string) int {
	err := r.Run(ctx, args)
	if err == nil {
		return 0
	}
	fmt.Fprintln(r.Stderr, "error:", describe(err))
	return exitCode(err)
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	return r.command().Run(ctx, args)
}

func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:      "retailpos",
		Usage:     "Single-store point of sale",
		Writer:    r.Stdout,
		ErrWriter: r.Stderr,
		// errors are reported once by Main
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			r.productCommand(),
			r.customerCommand(),
			r.checkoutCommand(),
			r.reportCommand(),
		},
	}
}

// action adapts fn into a cli action that runs inside a started fx app.
func (r *Runner) action(fn func(ctx context.Context, cmd *cli.Command, d Deps) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return r.withDeps(ctx, func(ctx context.Context, d Deps) error {
			return fn(ctx, cmd, d)
		})
	}
}

func (r *Runner) withDeps(ctx context.Context, fn func(context.Context, Deps) error) (err error) {
	var deps Deps
	opts := append([]fx.Option{fx.NopLogger}, r.Options...)
	opts = append(opts, fx.Invoke(func(d Deps) { deps = d }))

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return fmt.Errorf("%w: %w", errStartup, err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("%w: %w", errStartup, err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
		defer cancel()
		if stopErr := app.Stop(stopCtx); stopErr != nil {
			deps.Log.Warn("shutdown incomplete", zap.Error(stopErr))
		}
	}()

	ctx = logger.WithRunID(ctx, uuid.NewString())
	return fn(ctx, deps)
}

var errStartup = errors.New("startup failed")

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Stdout, format, args...)
}

func formatter(d Deps) pricing.Formatter {
	return pricing.NewFormatter(d.Config.Store.CurrencySymbol)
}
