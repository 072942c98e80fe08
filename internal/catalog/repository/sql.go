package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/pkg/db"
	"gorm.io/gorm"
)

// SQLStore keeps the catalog in a products table. SaveAll rewrites the table
// inside one transaction, mirroring the full-overwrite contract of the file
// store.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the products table and returns the store.
func NewSQLStore(conn *gorm.DB) (*SQLStore, error) {
	if err := conn.AutoMigrate(&domain.Product{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn}, nil
}

func (s *SQLStore) LoadAll(ctx context.Context) ([]domain.Product, error) {
	var items []domain.Product
	if err := s.db.WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLStore) SaveAll(ctx context.Context, products []domain.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(products, 100).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateCode
			}
			return err
		}
		return nil
	})
}

func (s *SQLStore) FindByCode(ctx context.Context, code int) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ domain.Store = (*SQLStore)(nil)
