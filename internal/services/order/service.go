package order

import (
	"context"
	"fmt"
	"time"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

// OrderStore persists orders with their line items. Lookups return (nil, nil)
// for a missing row.
type OrderStore interface {
	Save(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	ExistsByTableIDsAndStatusIn(ctx context.Context, tableIDs []int64, statuses []models.OrderStatus) (bool, error)
}

// MenuStore resolves the menus an order references.
type MenuStore interface {
	CountByIDIn(ctx context.Context, ids []int64) (int64, error)
}

// TableStore resolves the table an order is placed against.
type TableStore interface {
	FindByID(ctx context.Context, id int64) (*models.OrderTable, error)
}

// Notifier publishes domain event notifications.
type Notifier interface {
	Publish(ctx context.Context, notification models.Notification) error
}

// Service owns the order state machine.
type Service struct {
	orders OrderStore
	menus  MenuStore
	tables TableStore
	events Notifier
	logger *logger.Logger
}

// NewService creates an order service.
func NewService(orders OrderStore, menus MenuStore, tables TableStore, events Notifier, log *logger.Logger) *Service {
	return &Service{
		orders: orders,
		menus:  menus,
		tables: tables,
		events: events,
		logger: log,
	}
}

// CreateOrder creates an order against an occupied table. Every referenced
// menu must resolve; the order starts in COOKING.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	menuIDs := req.MenuIDs()
	count, err := s.menus.CountByIDIn(ctx, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menus: %w", err)
	}
	if count != int64(len(menuIDs)) {
		return nil, models.InvalidReference("menu", "resolved %d of %d referenced menus", count, len(menuIDs))
	}

	table, err := s.tables.FindByID(ctx, req.OrderTableID)
	if err != nil {
		return nil, fmt.Errorf("failed to find table: %w", err)
	}
	if table == nil {
		return nil, models.NotFound("order table", req.OrderTableID)
	}
	if table.Empty {
		return nil, models.InvalidStatus("cannot order against empty table %d", table.ID)
	}

	order := &models.Order{
		OrderTableID: table.ID,
		Status:       models.StatusCooking,
		OrderedTime:  time.Now().UTC(),
	}
	for _, item := range req.LineItems {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
		})
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order_created", "Order created", "", map[string]interface{}{
		"order_id": order.ID,
		"table_id": order.OrderTableID,
		"items":    len(order.LineItems),
	})

	s.notify(ctx, models.NewOrderCreatedNotification(order))

	return order, nil
}

// ChangeStatus moves an order to a new status. COMPLETION is terminal;
// sequencing between COOKING and MEAL is deliberately not enforced.
func (s *Service) ChangeStatus(ctx context.Context, orderID int64, next models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order == nil {
		return nil, models.NotFound("order", orderID)
	}

	old := order.Status
	if err := order.ChangeStatus(next); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("order_status_changed", "Order status changed", "", map[string]interface{}{
		"order_id":   order.ID,
		"old_status": string(old),
		"new_status": string(order.Status),
	})

	s.notify(ctx, models.NewStatusChangedNotification(order, old))

	return order, nil
}

// ListOrders returns all orders with their line items.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// HasActiveOrders reports whether any of the given tables has an order in
// COOKING or MEAL. The table component's emptying and ungroup guards consume
// this query.
func (s *Service) HasActiveOrders(ctx context.Context, tableIDs []int64) (bool, error) {
	return s.orders.ExistsByTableIDsAndStatusIn(ctx, tableIDs, models.ActiveStatuses())
}

func (s *Service) notify(ctx context.Context, notification models.Notification) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, notification); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish notification", "", err, map[string]interface{}{
			"event": notification.Event,
		})
	}
}
