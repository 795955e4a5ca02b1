package models

import "time"

// OrderStatus represents the kitchen stage of an order.
type OrderStatus string

const (
	StatusCooking    OrderStatus = "COOKING"
	StatusMeal       OrderStatus = "MEAL"
	StatusCompletion OrderStatus = "COMPLETION"
)

// Valid reports whether the status is one of the known stages.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCooking, StatusMeal, StatusCompletion:
		return true
	}
	return false
}

// Active reports whether the status still blocks table and group changes.
func (s OrderStatus) Active() bool {
	return s == StatusCooking || s == StatusMeal
}

// ActiveStatuses are the statuses that block emptying a table or dissolving
// a table group.
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{StatusCooking, StatusMeal}
}

// ParseOrderStatus converts external input into a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", InvalidArgument("unknown order status %q", s)
	}
	return status, nil
}

// OrderLineItem is a menu quantity requested within one order.
type OrderLineItem struct {
	ID       int64 `json:"id,omitempty" db:"id"`
	OrderID  int64 `json:"order_id,omitempty" db:"order_id"`
	MenuID   int64 `json:"menu_id" db:"menu_id"`
	Quantity int64 `json:"quantity" db:"quantity"`
}

// Order is one occupancy event against a table. It owns its line items
// exclusively.
type Order struct {
	ID           int64           `json:"id,omitempty" db:"id"`
	OrderTableID int64           `json:"order_table_id" db:"order_table_id"`
	Status       OrderStatus     `json:"status" db:"status"`
	OrderedTime  time.Time       `json:"ordered_time" db:"ordered_time"`
	LineItems    []OrderLineItem `json:"order_line_items"`
}

// ChangeStatus sets a new status. COMPLETION is terminal; sequencing between
// COOKING and MEAL is deliberately not enforced.
func (o *Order) ChangeStatus(next OrderStatus) error {
	if !next.Valid() {
		return InvalidArgument("unknown order status %q", string(next))
	}
	if o.Status == StatusCompletion {
		return InvalidStatus("order %d is completed and cannot change status", o.ID)
	}
	o.Status = next
	return nil
}

// OrderLineItemRequest is one proposed line of a new order.
type OrderLineItemRequest struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int64 `json:"quantity"`
}

// CreateOrderRequest represents the request to create a new order.
type CreateOrderRequest struct {
	OrderTableID int64                  `json:"order_table_id"`
	LineItems    []OrderLineItemRequest `json:"order_line_items"`
}

func (r *CreateOrderRequest) Validate() error {
	if len(r.LineItems) == 0 {
		return InvalidArgument("an order needs at least one line item")
	}
	for i, item := range r.LineItems {
		if item.Quantity < 0 {
			return InvalidArgument("order_line_items[%d].quantity must not be negative, got %d", i, item.Quantity)
		}
	}
	return nil
}

// MenuIDs returns the referenced menu ids in request order.
func (r *CreateOrderRequest) MenuIDs() []int64 {
	ids := make([]int64, 0, len(r.LineItems))
	for _, item := range r.LineItems {
		ids = append(ids, item.MenuID)
	}
	return ids
}
