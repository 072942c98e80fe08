package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/retailpos/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	validate *validator.Validate
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("customer.service"),
		repo:     p.Repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register assigns the next id (highest existing id + 1) and appends the record.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.Customer, error) {
	req = domain.RegisterRequest{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Customer{}, validationError(err)
	}

	existing, err := s.repo.LoadAll(ctx)
	if err != nil {
		return domain.Customer{}, err
	}
	last := 0
	for _, c := range existing {
		if c.ID > last {
			last = c.ID
		}
	}

	customer := domain.Customer{
		ID:      last + 1,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.repo.Append(ctx, customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer registered", zap.Int("customer_id", customer.ID))
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) ([]domain.Customer, error) {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Phone == nil && req.Email == nil && req.Address == nil {
		return nil, domain.ErrNothingToUpdate
	}
	patch := domain.RegisterRequest{Name: req.Name}
	if req.Phone != nil {
		patch.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		patch.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		patch.Address = strings.TrimSpace(*req.Address)
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}

	customers, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var updated []domain.Customer
	for i := range customers {
		c := &customers[i]
		if strings.ToLower(c.Name) != name {
			continue
		}
		if req.Phone != nil {
			c.Phone = patch.Phone
		}
		if req.Email != nil {
			c.Email = patch.Email
		}
		if req.Address != nil {
			c.Address = patch.Address
		}
		updated = append(updated, *c)
	}
	if len(updated) == 0 {
		return nil, domain.ErrCustomerNotFound
	}

	if err := s.repo.SaveAll(ctx, customers); err != nil {
		return nil, err
	}
	s.log.Info("customer updated", zap.Int("matched", len(updated)))
	return updated, nil
}

// Search matches by exact id, or by case-insensitive substring of name or phone.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	id, idErr := strconv.Atoi(query)
	needle := strings.ToLower(query)

	customers, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0)
	for _, c := range customers {
		switch {
		case idErr == nil && c.ID == id,
			strings.Contains(strings.ToLower(c.Name), needle),
			strings.Contains(strings.ToLower(c.Phone), needle):
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.LoadAll(ctx)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Name":
		return domain.ErrInvalidName
	case "Phone":
		return domain.ErrInvalidPhone
	case "Email":
		return domain.ErrInvalidEmail
	default:
		return domain.ErrInvalidAddress
	}
}
