package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single purchasable item in the catalog. Products are
// immutable once priced.
type Product struct {
	ID        int64           `json:"id,omitempty" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// CreateProductRequest represents the request to create a new product.
// Price is a pointer so an absent price is distinguishable from zero.
type CreateProductRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// Validate checks the request shape.
func (r *CreateProductRequest) Validate() error {
	if r.Name == "" {
		return InvalidArgument("product name is required")
	}
	if r.Price == nil {
		return InvalidPrice("product price is required")
	}
	if r.Price.IsNegative() {
		return InvalidPrice("product price must not be negative, got %s", r.Price)
	}
	return nil
}

// NewProduct builds a product from a validated request.
func NewProduct(r *CreateProductRequest) (*Product, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Product{
		Name:  r.Name,
		Price: *r.Price,
	}, nil
}
