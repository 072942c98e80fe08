package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smallbiznis/retailpos/internal/config"
	"github.com/smallbiznis/retailpos/internal/ledger/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/recordfile"
)

const (
	receiptFields   = 8
	salesItemFields = 6
)

// repo keeps both ledgers as append-only record files. Each append opens the
// file, writes every row of the call and closes it again; there is no retry.
type repo struct {
	receiptsPath   string
	salesItemsPath string
}

func Provide(cfg config.Config) domain.Repository {
	return New(cfg.Data.ReceiptsPath(), cfg.Data.SalesItemsPath())
}

func New(receiptsPath, salesItemsPath string) domain.Repository {
	return &repo{receiptsPath: receiptsPath, salesItemsPath: salesItemsPath}
}

// MaxReceiptID considers the leading field of every decodable line, so a
// torn trailing row still reserves its id.
func (r *repo) MaxReceiptID(ctx context.Context) (int, error) {
	last := 0
	_, err := recordfile.Scan(ctx, r.receiptsPath, func(fields []string) error {
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		if id > last {
			last = id
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return last, nil
}

func (r *repo) AppendReceipts(ctx context.Context, rows []domain.ReceiptRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.ReceiptID),
			row.Customer,
			row.Timestamp,
			strconv.Itoa(row.ProductCode),
			row.ProductName,
			strconv.Itoa(row.Quantity),
			pricing.Fixed(row.UnitPrice),
			pricing.Fixed(row.LineTotal),
		})
	}
	return recordfile.Append(r.receiptsPath, records)
}

func (r *repo) AppendSalesItems(ctx context.Context, rows []domain.SalesItemRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.ProductCode),
			row.ProductName,
			strconv.Itoa(row.Quantity),
			pricing.Fixed(row.UnitPrice),
			pricing.Fixed(row.LineTotal),
			row.Timestamp,
		})
	}
	return recordfile.Append(r.salesItemsPath, records)
}

func (r *repo) ScanReceipts(ctx context.Context, fn func(domain.ReceiptRecord)) (domain.ScanStats, error) {
	stats, err := recordfile.Scan(ctx, r.receiptsPath, func(fields []string) error {
		row, err := decodeReceipt(fields)
		if err != nil {
			return err
		}
		fn(row)
		return nil
	})
	return domain.ScanStats{Rows: stats.Records, Skipped: stats.Skipped}, err
}

func (r *repo) ScanSalesItems(ctx context.Context, fn func(domain.SalesItemRecord)) (domain.ScanStats, error) {
	stats, err := recordfile.Scan(ctx, r.salesItemsPath, func(fields []string) error {
		row, err := decodeSalesItem(fields)
		if err != nil {
			return err
		}
		fn(row)
		return nil
	})
	return domain.ScanStats{Rows: stats.Records, Skipped: stats.Skipped}, err
}

func decodeReceipt(fields []string) (domain.ReceiptRecord, error) {
	if len(fields) != receiptFields {
		return domain.ReceiptRecord{}, fmt.Errorf("receipt: want %d fields, got %d", receiptFields, len(fields))
	}
	var (
		row domain.ReceiptRecord
		err error
	)
	if row.ReceiptID, err = strconv.Atoi(fields[0]); err != nil {
		return row, err
	}
	row.Customer = fields[1]
	row.Timestamp = fields[2]
	if row.ProductCode, err = strconv.Atoi(fields[3]); err != nil {
		return row, err
	}
	row.ProductName = fields[4]
	if row.Quantity, err = strconv.Atoi(fields[5]); err != nil {
		return row, err
	}
	if row.UnitPrice, err = pricing.Parse(fields[6]); err != nil {
		return row, err
	}
	if row.LineTotal, err = pricing.Parse(fields[7]); err != nil {
		return row, err
	}
	if row.Timestamp == "" {
		return row, fmt.Errorf("receipt %d: empty timestamp", row.ReceiptID)
	}
	return row, nil
}

func decodeSalesItem(fields []string) (domain.SalesItemRecord, error) {
	if len(fields) != salesItemFields {
		return domain.SalesItemRecord{}, fmt.Errorf("sales item: want %d fields, got %d", salesItemFields, len(fields))
	}
	var (
		row domain.SalesItemRecord
		err error
	)
	if row.ProductCode, err = strconv.Atoi(fields[0]); err != nil {
		return row, err
	}
	row.ProductName = fields[1]
	if row.Quantity, err = strconv.Atoi(fields[2]); err != nil {
		return row, err
	}
	if row.UnitPrice, err = pricing.Parse(fields[3]); err != nil {
		return row, err
	}
	if row.LineTotal, err = pricing.Parse(fields[4]); err != nil {
		return row, err
	}
	row.Timestamp = fields[5]
	if row.Timestamp == "" {
		return row, fmt.Errorf("sales item %d: empty timestamp", row.ProductCode)
	}
	return row, nil
}
