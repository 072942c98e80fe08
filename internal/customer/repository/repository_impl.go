package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smallbiznis/retailpos/internal/config"
	"github.com/smallbiznis/retailpos/internal/customer/domain"
	"github.com/smallbiznis/retailpos/pkg/recordfile"
	"go.uber.org/zap"
)

// repo stores customers one per line: id,name,phone,email,address.
type repo struct {
	path string
	log  *zap.Logger
}

func Provide(cfg config.Config, log *zap.Logger) domain.Repository {
	return New(cfg.Data.CustomersPath(), log)
}

func New(path string, log *zap.Logger) domain.Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &repo{path: path, log: log.Named("customer.repository")}
}

func (r *repo) LoadAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	stats, err := recordfile.Scan(ctx, r.path, func(fields []string) error {
		c, err := decodeCustomer(fields)
		if err != nil {
			return err
		}
		customers = append(customers, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stats.Skipped > 0 {
		r.log.Debug("skipped malformed customer lines", zap.Int("skipped", stats.Skipped))
	}
	return customers, nil
}

func (r *repo) Append(ctx context.Context, customer domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return recordfile.Append(r.path, [][]string{encodeCustomer(customer)})
}

func (r *repo) SaveAll(ctx context.Context, customers []domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := make([][]string, 0, len(customers))
	for _, c := range customers {
		records = append(records, encodeCustomer(c))
	}
	return recordfile.Rewrite(r.path, records)
}

// decodeCustomer accepts partially filled records: only id and name are
// required.
func decodeCustomer(fields []string) (domain.Customer, error) {
	if len(fields) < 2 || len(fields) > 5 {
		return domain.Customer{}, fmt.Errorf("customer: unexpected field count %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Customer{}, err
	}
	padded := make([]string, 5)
	copy(padded, fields)
	return domain.Customer{
		ID:      id,
		Name:    padded[1],
		Phone:   padded[2],
		Email:   padded[3],
		Address: padded[4],
	}, nil
}

func encodeCustomer(c domain.Customer) []string {
	return []string{strconv.Itoa(c.ID), c.Name, c.Phone, c.Email, c.Address}
}
