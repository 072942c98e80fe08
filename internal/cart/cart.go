// Package cart accumulates the line items of one checkout session.
package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/pricing"
	"github.com/smallbiznis/retailpos/pkg/apperror"
)

const WalkInCustomer = "Walk-in"

var (
	ErrInvalidQuantity   = apperror.New(apperror.KindInvalidInput, "invalid_quantity")
	ErrInsufficientStock = apperror.New(apperror.KindInsufficientStock, "insufficient_stock")
	ErrNotInCart         = apperror.New(apperror.KindNotFound, "not_in_cart")
)

// Catalog resolves products by code.
type Catalog interface {
	FindByCode(ctx context.Context, code int) (*catalogdomain.Product, error)
}

// Line is one product in the cart. LineTotal always equals
// Quantity * UnitPrice rounded to cents.
type Line struct {
	Code      int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Snapshot is a read-only view of the cart.
type Snapshot struct {
	Customer string
	Lines    []Line
	Subtotal decimal.Decimal
}

// Cart is bound to one customer and never persisted.
type Cart struct {
	customer string
	catalog  Catalog
	lines    []Line
}

// New starts a cart. A blank customer name becomes "Walk-in".
func New(customer string, catalog Catalog) *Cart {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		customer = WalkInCustomer
	}
	return &Cart{customer: customer, catalog: catalog}
}

func (c *Cart) Customer() string { return c.customer }

func (c *Cart) Len() int { return len(c.lines) }

// Add puts quantity units of code into the cart. The requested quantity is
// checked against catalog stock only, not against what the cart already
// holds. Re-adding a code merges quantities and reprices the whole line from
// the current catalog price and discount.
func (c *Cart) Add(ctx context.Context, code, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	p, err := c.catalog.FindByCode(ctx, code)
	if err != nil {
		return Line{}, err
	}
	if quantity > p.Stock {
		return Line{}, fmt.Errorf("%w: product %d has %d available", ErrInsufficientStock, code, p.Stock)
	}

	unit := pricing.UnitPriceAfterDiscount(p.Price, p.DiscountPercent)
	for i := range c.lines {
		if c.lines[i].Code != code {
			continue
		}
		c.lines[i].Quantity += quantity
		c.lines[i].UnitPrice = unit
		c.lines[i].LineTotal = pricing.LineTotal(c.lines[i].Quantity, unit)
		return c.lines[i], nil
	}

	line := Line{
		Code:      code,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: unit,
		LineTotal: pricing.LineTotal(quantity, unit),
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove deletes the line for code, keeping the order of the others.
func (c *Cart) Remove(code int) error {
	for i := range c.lines {
		if c.lines[i].Code == code {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %d", ErrNotInCart, code)
}

// Snapshot copies the current lines and subtotal.
func (c *Cart) Snapshot() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}
	return Snapshot{Customer: c.customer, Lines: lines, Subtotal: subtotal}
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = nil
}
