package domain

import (
	"github.com/shopspring/decimal"
)

const (
	DefaultCategory    = "Uncategorized"
	DefaultSubcategory = "General"
)

// Product is one catalog entry. Stock is the single source of truth for
// availability.
type Product struct {
	Code            int             `gorm:"primaryKey;autoIncrement:false"`
	Name            string          `gorm:"type:varchar(64);not null"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock           int             `gorm:"not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount;type:decimal(5,2);not null"`
	Category        string          `gorm:"type:varchar(32);not null;index"`
	Subcategory     string          `gorm:"type:varchar(32);not null"`
}

func (Product) TableName() string { return "products" }

// DecrementStock removes qty units, clamping at zero.
func (p *Product) DecrementStock(qty int) {
	if qty <= 0 {
		return
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
}
