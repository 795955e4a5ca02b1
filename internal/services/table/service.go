package table

import (
	"context"
	"fmt"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

// TableStore persists order tables. Lookups return (nil, nil) for a missing row.
type TableStore interface {
	Save(ctx context.Context, table *models.OrderTable) error
	Update(ctx context.Context, table *models.OrderTable) error
	FindByID(ctx context.Context, id int64) (*models.OrderTable, error)
	FindAllByIDIn(ctx context.Context, ids []int64) ([]models.OrderTable, error)
	FindByTableGroupID(ctx context.Context, groupID int64) ([]models.OrderTable, error)
	FindAll(ctx context.Context) ([]models.OrderTable, error)
}

// GroupStore persists table groups. SaveGroup and ClearGroup cover all member
// tables atomically.
type GroupStore interface {
	SaveGroup(ctx context.Context, group *models.TableGroup) error
	ClearGroup(ctx context.Context, groupID int64) error
	FindGroupByID(ctx context.Context, id int64) (*models.TableGroup, error)
}

// OrderQuery answers whether any of the given tables still has an order in a
// status that blocks table changes. Owned by the order component.
type OrderQuery interface {
	HasActiveOrders(ctx context.Context, tableIDs []int64) (bool, error)
}

// Notifier publishes domain event notifications.
type Notifier interface {
	Publish(ctx context.Context, notification models.Notification) error
}

// Service owns the table and table-group lifecycle rules.
type Service struct {
	tables TableStore
	groups GroupStore
	orders OrderQuery
	events Notifier
	logger *logger.Logger
}

// NewService creates a table service.
func NewService(tables TableStore, groups GroupStore, orders OrderQuery, events Notifier, log *logger.Logger) *Service {
	return &Service{
		tables: tables,
		groups: groups,
		orders: orders,
		events: events,
		logger: log,
	}
}

// CreateTable persists a new table with the requested initial state.
func (s *Service) CreateTable(ctx context.Context, req *models.CreateTableRequest) (*models.OrderTable, error) {
	table, err := models.NewOrderTable(req)
	if err != nil {
		return nil, err
	}

	if err := s.tables.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to save table: %w", err)
	}

	s.logger.Info("table_created", "Order table created", "", map[string]interface{}{
		"table_id": table.ID,
		"empty":    table.Empty,
	})

	return table, nil
}

// ListTables returns all tables.
func (s *Service) ListTables(ctx context.Context) ([]models.OrderTable, error) {
	return s.tables.FindAll(ctx)
}

// ChangeEmpty toggles a table's occupancy. Grouped tables and tables with an
// active order are rejected.
func (s *Service) ChangeEmpty(ctx context.Context, tableID int64, empty bool) (*models.OrderTable, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if table.Grouped() {
		return nil, models.AlreadyGrouped(table.ID)
	}

	active, err := s.orders.HasActiveOrders(ctx, []int64{table.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to check active orders: %w", err)
	}
	if active {
		return nil, models.InvalidStatus("table %d has an order in progress", table.ID)
	}

	if err := table.SetEmpty(empty); err != nil {
		return nil, err
	}
	if err := s.tables.Update(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}

	s.logger.Info("table_empty_changed", "Order table occupancy changed", "", map[string]interface{}{
		"table_id": table.ID,
		"empty":    table.Empty,
	})

	return table, nil
}

// ChangeNumberOfGuests changes the guest count of an occupied table.
func (s *Service) ChangeNumberOfGuests(ctx context.Context, tableID int64, count int) (*models.OrderTable, error) {
	table, err := s.findTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if err := table.SetNumberOfGuests(count); err != nil {
		return nil, err
	}
	if err := s.tables.Update(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}

	s.logger.Info("table_guests_changed", "Guest count changed", "", map[string]interface{}{
		"table_id":         table.ID,
		"number_of_guests": table.NumberOfGuests,
	})

	return table, nil
}

// CreateGroup groups at least two empty, ungrouped tables into one unit. All
// members transition together or none do.
func (s *Service) CreateGroup(ctx context.Context, req *models.CreateTableGroupRequest) (*models.TableGroup, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tables, err := s.tables.FindAllByIDIn(ctx, req.OrderTableIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tables: %w", err)
	}
	if len(tables) != len(req.OrderTableIDs) {
		return nil, models.InvalidArgument("resolved %d of %d requested tables", len(tables), len(req.OrderTableIDs))
	}

	for i := range tables {
		if err := tables[i].CanGroup(); err != nil {
			return nil, err
		}
	}

	group := &models.TableGroup{OrderTables: tables}
	if err := s.groups.SaveGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save table group: %w", err)
	}

	s.logger.Info("tables_grouped", "Table group created", "", map[string]interface{}{
		"table_group_id": group.ID,
		"table_ids":      group.TableIDs(),
	})

	s.notify(ctx, models.NewTablesGroupedNotification(group))

	return group, nil
}

// Ungroup dissolves a table group. Rejected while any member still has an
// order in progress; member occupancy is left untouched.
func (s *Service) Ungroup(ctx context.Context, groupID int64) error {
	group, err := s.groups.FindGroupByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to find table group: %w", err)
	}
	if group == nil {
		return models.NotFound("table group", groupID)
	}

	tables, err := s.tables.FindByTableGroupID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to resolve group tables: %w", err)
	}

	tableIDs := make([]int64, 0, len(tables))
	for _, t := range tables {
		tableIDs = append(tableIDs, t.ID)
	}

	if len(tableIDs) > 0 {
		active, err := s.orders.HasActiveOrders(ctx, tableIDs)
		if err != nil {
			return fmt.Errorf("failed to check active orders: %w", err)
		}
		if active {
			return models.InvalidStatus("table group %d has an order in progress", groupID)
		}
	}

	if err := s.groups.ClearGroup(ctx, groupID); err != nil {
		return fmt.Errorf("failed to clear table group: %w", err)
	}

	s.logger.Info("tables_ungrouped", "Table group dissolved", "", map[string]interface{}{
		"table_group_id": groupID,
		"table_ids":      tableIDs,
	})

	s.notify(ctx, models.NewTablesUngroupedNotification(groupID, tableIDs))

	return nil
}

func (s *Service) findTable(ctx context.Context, tableID int64) (*models.OrderTable, error) {
	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to find table: %w", err)
	}
	if table == nil {
		return nil, models.NotFound("order table", tableID)
	}
	return table, nil
}

// notify publishes after the mutation is committed; notifications are advisory
// and never roll the operation back.
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
