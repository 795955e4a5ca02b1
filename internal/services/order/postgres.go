package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pos-system/internal/database"
	"pos-system/internal/models"
)

// OrderRepository is the PostgreSQL OrderStore.
type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Save writes the order and its line items in one transaction.
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.OrderTableID, string(order.Status), order.OrderedTime,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for i := range order.LineItems {
		item := &order.LineItems[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, database.InsertOrderLineItemSQL,
			item.OrderID, item.MenuID, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.QueryRow(ctx, database.GetOrderByIDSQL, id).
		Scan(&order.ID, &order.OrderTableID, &order.Status, &order.OrderedTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.findLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.LineItems = items

	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order) error {
	return r.db.Exec(ctx, database.UpdateOrderStatusSQL, string(order.Status), order.ID)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, database.GetAllOrdersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.OrderTableID, &order.Status, &order.OrderedTime); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.findLineItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].LineItems = items
	}

	return orders, nil
}

// ExistsByTableIDsAndStatusIn backs the table component's active-order guard.
func (r *OrderRepository) ExistsByTableIDsAndStatusIn(ctx context.Context, tableIDs []int64, statuses []models.OrderStatus) (bool, error) {
	raw := make([]string, 0, len(statuses))
	for _, status := range statuses {
		raw = append(raw, string(status))
	}

	var exists bool
	err := r.db.QueryRow(ctx, database.ActiveOrdersExistSQL, tableIDs, raw).Scan(&exists)
	return exists, err
}

func (r *OrderRepository) findLineItems(ctx context.Context, orderID int64) ([]models.OrderLineItem, error) {
	rows, err := r.db.Query(ctx, database.GetOrderLineItemsByOrderIDSQL, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderLineItem
	for rows.Next() {
		var item models.OrderLineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
