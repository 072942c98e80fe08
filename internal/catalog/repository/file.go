package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/recordfile"
	"go.uber.org/zap"
)

// FileStore keeps the catalog in a products file, one product per line:
// code,name,price,stock,discount,category,subcategory. Shorter legacy lines
// (five or six fields) get the default category and subcategory.
//
// Lines that cannot be read as a product are remembered by LoadAll and
// written back unchanged by SaveAll, so a load-modify-save cycle never drops
// them from the file.
type FileStore struct {
	path string
	log  *zap.Logger

	mu         sync.Mutex
	unreadable [][]string
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log.Named("catalog.file")}
}

func (s *FileStore) LoadAll(ctx context.Context) ([]domain.Product, error) {
	var (
		products   []domain.Product
		unreadable [][]string
	)
	stats, err := recordfile.Scan(ctx, s.path, func(fields []string) error {
		p, err := decodeProduct(fields)
		if err != nil {
			unreadable = append(unreadable, fields)
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.unreadable = unreadable
	s.mu.Unlock()

	if stats.Skipped > 0 {
		s.log.Warn("skipped unreadable product lines",
			zap.String("path", s.path),
			zap.Int("skipped", stats.Skipped),
			zap.Int("preserved", len(unreadable)),
		)
	}
	return products, nil
}

func (s *FileStore) SaveAll(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([][]string, 0, len(products)+len(s.unreadable))
	for _, p := range products {
		records = append(records, encodeProduct(p))
	}
	records = append(records, s.unreadable...)
	return recordfile.Rewrite(s.path, records)
}

func (s *FileStore) FindByCode(ctx context.Context, code int) (*domain.Product, error) {
	products, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Code == code {
			return &products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func decodeProduct(fields []string) (domain.Product, error) {
	if len(fields) < 5 {
		return domain.Product{}, fmt.Errorf("product: want at least 5 fields, got %d", len(fields))
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Product{}, err
	}
	price, err := pricing.Parse(fields[2])
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := strconv.Atoi(fields[3])
	if err != nil {
		return domain.Product{}, err
	}
	discount, err := pricing.Parse(fields[4])
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		Code:            code,
		Name:            fields[1],
		Price:           price,
		Stock:           stock,
		DiscountPercent: discount,
		Category:        domain.DefaultCategory,
		Subcategory:     domain.DefaultSubcategory,
	}
	if len(fields) > 5 && fields[5] != "" {
		p.Category = fields[5]
	}
	// unquoted subcategories may contain commas
	if len(fields) > 6 {
		if sub := strings.Join(fields[6:], ","); sub != "" {
			p.Subcategory = sub
		}
	}
	return p, nil
}

func encodeProduct(p domain.Product) []string {
	return []string{
		strconv.Itoa(p.Code),
		p.Name,
		pricing.Fixed(p.Price),
		strconv.Itoa(p.Stock),
		pricing.Fixed(p.DiscountPercent),
		p.Category,
		p.Subcategory,
	}
}

var _ domain.Store = (*FileStore)(nil)
