package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultLowStockThreshold = 5

var maxDiscount = decimal.NewFromInt(100)

type Params struct {
	fx.In

	Log    *zap.Logger
	Store  domain.Store
	Config config.Config
}

type Service struct {
	log       *zap.Logger
	store     domain.Store
	validate  *validator.Validate
	threshold int
}

func New(p Params) domain.Service {
	threshold := p.Config.Inventory.LowStockThreshold
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return &Service{
		log:       p.Log.Named("catalog.service"),
		store:     p.Store,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		threshold: threshold,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Subcategory = strings.TrimSpace(req.Subcategory)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if err := checkDiscount(req.DiscountPercent); err != nil {
		return nil, err
	}

	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(products, req.Code) >= 0 {
		return nil, domain.ErrDuplicateCode
	}

	p := domain.Product{
		Code:            req.Code,
		Name:            req.Name,
		Price:           req.Price,
		Stock:           req.Stock,
		DiscountPercent: req.DiscountPercent,
		Category:        orDefault(req.Category, domain.DefaultCategory),
		Subcategory:     orDefault(req.Subcategory, domain.DefaultSubcategory),
	}
	products = append(products, p)
	if err := s.store.SaveAll(ctx, products); err != nil {
		return nil, err
	}

	s.log.Info("product added", zap.Int("code", p.Code), zap.String("name", p.Name))
	return &p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.store.LoadAll(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, req domain.CategoryFilter) ([]domain.Product, error) {
	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(req.Category, p.Category) && matchesFilter(req.Subcategory, p.Subcategory) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Product, error) {
	if req.Code <= 0 {
		return nil, domain.ErrInvalidCode
	}

	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(products, req.Code)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	item := &products[idx]

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			item.Name = name
		}
	}
	if req.Price != nil && !req.Price.IsNegative() {
		item.Price = *req.Price
	}
	if req.Stock != nil && *req.Stock >= 0 {
		item.Stock = *req.Stock
	}
	if req.DiscountPercent != nil && !req.DiscountPercent.IsNegative() {
		if err := checkDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		item.DiscountPercent = *req.DiscountPercent
	}
	if req.Category != nil {
		if category := strings.TrimSpace(*req.Category); category != "" {
			item.Category = category
		}
	}
	if req.Subcategory != nil {
		if subcategory := strings.TrimSpace(*req.Subcategory); subcategory != "" {
			item.Subcategory = subcategory
		}
	}

	if err := s.store.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	updated := *item
	s.log.Info("product updated", zap.Int("code", updated.Code))
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, code int) error {
	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(products, code)
	if idx < 0 {
		return domain.ErrProductNotFound
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := s.store.SaveAll(ctx, products); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.Int("code", code))
	return nil
}

// LowStock returns products whose stock is below the configured threshold.
func (s *Service) LowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.Stock < s.threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search looks a product up by code when the query is all digits, otherwise
// by case-insensitive name substring.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	if isDigits(query) {
		code, err := strconv.Atoi(query)
		if err != nil {
			return nil, domain.ErrInvalidCode
		}
		p, err := s.store.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return []domain.Product{*p}, nil
	}

	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Code":
		return domain.ErrInvalidCode
	case "Name":
		return domain.ErrInvalidName
	case "Stock":
		return domain.ErrInvalidStock
	default:
		return domain.ErrInvalidCategory
	}
}

func checkDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxDiscount) {
		return domain.ErrInvalidDiscount
	}
	return nil
}

func matchesFilter(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "all" {
		return true
	}
	return filter == value
}

func indexOf(products []domain.Product, code int) int {
	for i := range products {
		if products[i].Code == code {
			return i
		}
	}
	return -1
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
