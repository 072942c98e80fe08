package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/cart"
	catalogdomain "github.com/smallbiznis/retailpos/internal/catalog/domain"
	checkoutdomain "github.com/smallbiznis/retailpos/internal/checkout/domain"
	"github.com/smallbiznis/retailpos/internal/clock"
	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	obslogger "github.com/smallbiznis/retailpos/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/retailpos/internal/observability/metrics"
	"github.com/smallbiznis/retailpos/internal/observability/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// BillWriter persists bill artifacts.
type BillWriter interface {
	Write(ctx context.Context, b bill.Bill) ([]string, error)
	StoreName() string
}

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Catalog    catalogdomain.Store
	Ledger     ledgerdomain.Service
	Bills      BillWriter
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	catalog    catalogdomain.Store
	ledger     ledgerdomain.Service
	bills      BillWriter
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) checkoutdomain.Service {
	return &Service{
		log:        p.Log.Named("checkout.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		catalog:    p.Catalog,
		ledger:     p.Ledger,
		bills:      p.Bills,
		obsMetrics: p.ObsMetrics,
	}
}

// Finalize runs the checkout steps in order: bill, receipt rows, sales-item
// rows, stock decrement. A failing step is recorded as a warning and the
// remaining steps still run. Cancelling ctx before the first write aborts
// cleanly; once writing has started the pipeline runs to the end.
func (s *Service) Finalize(ctx context.Context, c *cart.Cart) (*checkoutdomain.Result, error) {
	ctx, span := tracing.Start(ctx, "checkout.finalize")
	var err error
	defer func() { tracing.End(span, err) }()

	snap := c.Snapshot()
	if len(snap.Lines) == 0 {
		s.obsMetrics.RecordCheckout("rejected", 0)
		err = checkoutdomain.ErrEmptyCart
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	res := &checkoutdomain.Result{
		CheckoutID: s.genID.Generate(),
		Customer:   snap.Customer,
		Timestamp:  s.clock.Now(),
		Lines:      snap.Lines,
		Subtotal:   snap.Subtotal,
		Discount:   decimal.Zero,
	}
	res.Net = res.Subtotal.Sub(res.Discount)

	log := obslogger.WithContext(ctx, s.log).With(
		zap.String("checkout_id", res.CheckoutID.String()),
		zap.String("customer", res.Customer),
	)
	span.SetAttributes(
		attribute.String("checkout.id", res.CheckoutID.String()),
		attribute.Int("checkout.lines", len(res.Lines)),
	)

	// From here on every step runs even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	paths, billErr := s.bills.Write(ctx, s.buildBill(res.Customer, res.Timestamp, snap))
	res.BillPaths = paths
	s.warn(log, res, checkoutdomain.StepBill, billErr)

	sale := toSale(res.Customer, res.Timestamp, snap.Lines)
	receiptID, receiptErr := s.ledger.WriteReceipt(ctx, sale)
	res.ReceiptID = receiptID
	s.warn(log, res, checkoutdomain.StepReceipts, receiptErr)

	s.warn(log, res, checkoutdomain.StepSalesItems, s.ledger.WriteSalesItems(ctx, sale))

	s.warn(log, res, checkoutdomain.StepStock, s.decrementStock(ctx, snap.Lines))

	c.Clear()

	outcome := "ok"
	if res.Partial() {
		outcome = "partial"
	}
	s.obsMetrics.RecordCheckout(outcome, res.Net.InexactFloat64())
	span.SetAttributes(attribute.Int("checkout.receipt_id", res.ReceiptID))
	log.Info("checkout finalized",
		zap.Int("receipt_id", res.ReceiptID),
		zap.String("net_total", res.Net.StringFixed(2)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

func (s *Service) Preview(c *cart.Cart) bill.Bill {
	snap := c.Snapshot()
	return s.buildBill(snap.Customer, s.clock.Now(), snap)
}

// decrementStock reloads the catalog, removes the sold quantities (never
// below zero) and writes the whole catalog back. Codes no longer in the
// catalog are skipped.
func (s *Service) decrementStock(ctx context.Context, lines []cart.Line) error {
	products, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return err
	}
	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.Code] = i
	}

	units := 0
	for _, l := range lines {
		i, ok := index[l.Code]
		if !ok {
			s.log.Warn("sold product missing from catalog", zap.Int("code", l.Code))
			continue
		}
		products[i].DecrementStock(l.Quantity)
		units += l.Quantity
	}
	if err := s.catalog.SaveAll(ctx, products); err != nil {
		return err
	}
	s.obsMetrics.RecordUnitsSold(units)
	return nil
}

func (s *Service) warn(log *zap.Logger, res *checkoutdomain.Result, step string, err error) {
	if err == nil {
		return
	}
	res.Warnings = append(res.Warnings, checkoutdomain.Warning{Step: step, Err: err})
	log.Warn("checkout step failed", zap.String("step", step), zap.Error(err))
}

func (s *Service) buildBill(customer string, at time.Time, snap cart.Snapshot) bill.Bill {
	lines := make([]bill.Line, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, bill.Line{
			Code:      l.Code,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return bill.Bill{
		StoreName: s.bills.StoreName(),
		Customer:  customer,
		Timestamp: at,
		Lines:     lines,
		Subtotal:  snap.Subtotal,
		Discount:  decimal.Zero,
		Net:       snap.Subtotal,
	}
}

func toSale(customer string, at time.Time, lines []cart.Line) ledgerdomain.Sale {
	sale := ledgerdomain.Sale{Customer: customer, At: at, Lines: make([]ledgerdomain.SaleLine, 0, len(lines))}
	for _, l := range lines {
		sale.Lines = append(sale.Lines, ledgerdomain.SaleLine{
			ProductCode: l.Code,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return sale
}
