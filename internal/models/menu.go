package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuGroup is a named category under which menus are organized.
type MenuGroup struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// CreateMenuGroupRequest represents the request to create a new menu group.
type CreateMenuGroupRequest struct {
	Name string `json:"name"`
}

func (r *CreateMenuGroupRequest) Validate() error {
	if r.Name == "" {
		return InvalidArgument("menu group name is required")
	}
	return nil
}

// MenuProduct binds a product quantity into a menu's composition. Price is a
// snapshot of the product price at composition time.
type MenuProduct struct {
	ID        int64           `json:"id,omitempty" db:"id"`
	MenuID    int64           `json:"menu_id,omitempty" db:"menu_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int64           `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// Amount returns the line's contribution to the composition total.
func (mp MenuProduct) Amount() decimal.Decimal {
	return mp.Price.Mul(decimal.NewFromInt(mp.Quantity))
}

// Menu is a priced composition of products under a menu group. A menu
// exclusively owns its lines and is immutable once created.
type Menu struct {
	ID          int64           `json:"id,omitempty" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	MenuGroupID int64           `json:"menu_group_id" db:"menu_group_id"`
	Products    []MenuProduct   `json:"menu_products"`
	CreatedAt   time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// MenuProductRequest is one proposed line of a new menu.
type MenuProductRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CreateMenuRequest represents the request to create a new menu.
type CreateMenuRequest struct {
	Name        string               `json:"name"`
	Price       *decimal.Decimal     `json:"price"`
	MenuGroupID int64                `json:"menu_group_id"`
	Products    []MenuProductRequest `json:"menu_products"`
}

// Validate checks the request shape. Reference resolution and the price
// invariant are the composition step's job.
func (r *CreateMenuRequest) Validate() error {
	if r.Name == "" {
		return InvalidArgument("menu name is required")
	}
	for i, line := range r.Products {
		if line.Quantity < 0 {
			return InvalidArgument("menu_products[%d].quantity must not be negative, got %d", i, line.Quantity)
		}
	}
	return nil
}

// ComposeMenu builds a menu from a request and the resolved products its lines
// reference. The menu price must not exceed the sum of line prices times
// quantities.
func ComposeMenu(r *CreateMenuRequest, products map[int64]Product) (*Menu, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Price == nil {
		return nil, InvalidPrice("menu price is required")
	}
	if r.Price.IsNegative() {
		return nil, InvalidPrice("menu price must not be negative, got %s", r.Price)
	}

	lines := make([]MenuProduct, 0, len(r.Products))
	total := decimal.Zero
	for _, req := range r.Products {
		product, ok := products[req.ProductID]
		if !ok {
			return nil, InvalidReference("product", "id %d does not exist", req.ProductID)
		}
		line := MenuProduct{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Price:     product.Price,
		}
		total = total.Add(line.Amount())
		lines = append(lines, line)
	}

	if r.Price.GreaterThan(total) {
		return nil, InvalidPrice("menu price %s exceeds the sum of its products %s", r.Price, total)
	}

	return &Menu{
		Name:        r.Name,
		Price:       *r.Price,
		MenuGroupID: r.MenuGroupID,
		Products:    lines,
	}, nil
}
