package service

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/config"
	ledgerdomain "github.com/smallbiznis/retailpos/internal/ledger/domain"
	obsmetrics "github.com/smallbiznis/retailpos/internal/observability/metrics"
	"github.com/smallbiznis/retailpos/internal/observability/tracing"
	reportdomain "github.com/smallbiznis/retailpos/internal/report/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxTopLimit caps the ranking whatever the configured or requested limit.
const maxTopLimit = 10

type Params struct {
	fx.In

	Log        *zap.Logger
	Config     config.Config
	Ledger     ledgerdomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	ledger     ledgerdomain.Service
	topLimit   int
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) reportdomain.Service {
	limit := p.Config.Report.TopLimit
	if limit <= 0 || limit > maxTopLimit {
		limit = maxTopLimit
	}
	return &Service{
		log:        p.Log.Named("report.service"),
		ledger:     p.Ledger,
		topLimit:   limit,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) TotalIncome(ctx context.Context) (reportdomain.Income, error) {
	return s.income(ctx, "total_income", "", func(string) bool { return true })
}

func (s *Service) DailyIncome(ctx context.Context, date string) (reportdomain.Income, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return reportdomain.Income{}, reportdomain.ErrInvalidDate
	}
	return s.income(ctx, "daily_income", date, func(ts string) bool {
		return strings.HasPrefix(ts, date)
	})
}

func (s *Service) MonthlyIncome(ctx context.Context, yearMonth string) (reportdomain.Income, error) {
	yearMonth = strings.TrimSpace(yearMonth)
	if len(yearMonth) < 7 {
		return reportdomain.Income{}, reportdomain.ErrInvalidMonth
	}
	month := yearMonth[:7]
	return s.income(ctx, "monthly_income", month, func(ts string) bool {
		return len(ts) >= 7 && ts[:7] == month
	})
}

func (s *Service) income(ctx context.Context, report, period string, match func(ts string) bool) (out reportdomain.Income, err error) {
	ctx, span := tracing.Start(ctx, "report."+report, attribute.String("report.period", period))
	defer func() { tracing.End(span, err) }()

	rows, err := s.ledger.Receipts(ctx)
	if err != nil {
		return reportdomain.Income{}, err
	}

	out = reportdomain.Income{Period: period, Total: decimal.Zero}
	for _, row := range rows {
		if !match(row.Timestamp) {
			continue
		}
		out.Rows++
		out.Total = out.Total.Add(row.LineTotal)
	}

	s.obsMetrics.RecordReportRun(report)
	span.SetAttributes(attribute.Int("report.rows", out.Rows))
	return out, nil
}

func (s *Service) ProductWise(ctx context.Context, code int) (out reportdomain.ProductSales, err error) {
	if code <= 0 {
		return reportdomain.ProductSales{}, reportdomain.ErrInvalidCode
	}
	ctx, span := tracing.Start(ctx, "report.product_wise", attribute.Int("product.code", code))
	defer func() { tracing.End(span, err) }()

	rows, err := s.ledger.Receipts(ctx)
	if err != nil {
		return reportdomain.ProductSales{}, err
	}

	out = reportdomain.ProductSales{Code: code, Revenue: decimal.Zero}
	for _, row := range rows {
		if row.ProductCode != code {
			continue
		}
		out.Rows = append(out.Rows, row)
		out.Quantity += row.Quantity
		out.Revenue = out.Revenue.Add(row.LineTotal)
	}

	s.obsMetrics.RecordReportRun("product_wise")
	return out, nil
}

func (s *Service) TopSelling(ctx context.Context, limit int) (out []reportdomain.ProductRank, err error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	ctx, span := tracing.Start(ctx, "report.top_selling", attribute.Int("report.limit", limit))
	defer func() { tracing.End(span, err) }()

	rows, err := s.ledger.SalesItems(ctx)
	if err != nil {
		return nil, err
	}

	// first-seen order is the tiebreak after quantity and revenue
	index := make(map[int]int)
	var ranks []reportdomain.ProductRank
	for _, row := range rows {
		i, ok := index[row.ProductCode]
		if !ok {
			i = len(ranks)
			index[row.ProductCode] = i
			ranks = append(ranks, reportdomain.ProductRank{
				Code:    row.ProductCode,
				Name:    row.ProductName,
				Revenue: decimal.Zero,
			})
		}
		ranks[i].Quantity += row.Quantity
		ranks[i].Revenue = ranks[i].Revenue.Add(row.LineTotal)
	}

	slices.SortStableFunc(ranks, func(a, b reportdomain.ProductRank) int {
		if a.Quantity != b.Quantity {
			return b.Quantity - a.Quantity
		}
		return b.Revenue.Cmp(a.Revenue)
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	s.obsMetrics.RecordReportRun("top_selling")
	s.log.Debug("top selling computed", zap.Int("products", len(index)), zap.Int("limit", limit))
	return ranks, nil
}

func (s *Service) CustomerHistory(ctx context.Context, name string) (out reportdomain.CustomerHistory, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return reportdomain.CustomerHistory{}, reportdomain.ErrInvalidCustomer
	}
	ctx, span := tracing.Start(ctx, "report.customer_history")
	defer func() { tracing.End(span, err) }()

	rows, err := s.ledger.Receipts(ctx)
	if err != nil {
		return reportdomain.CustomerHistory{}, err
	}

	out = reportdomain.CustomerHistory{Customer: name, Total: decimal.Zero}
	index := make(map[int]int)
	for _, row := range rows {
		if !strings.EqualFold(row.Customer, name) {
			continue
		}
		i, ok := index[row.ReceiptID]
		if !ok {
			i = len(out.Receipts)
			index[row.ReceiptID] = i
			out.Receipts = append(out.Receipts, reportdomain.CustomerReceipt{
				ReceiptID: row.ReceiptID,
				Timestamp: row.Timestamp,
				Total:     decimal.Zero,
			})
		}
		receipt := &out.Receipts[i]
		receipt.Lines = append(receipt.Lines, row)
		receipt.Total = receipt.Total.Add(row.LineTotal)
		out.Total = out.Total.Add(row.LineTotal)
	}

	s.obsMetrics.RecordReportRun("customer_history")
	return out, nil
}
