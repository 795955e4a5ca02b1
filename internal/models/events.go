package models

import "time"

// Event names carried by notifications.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventTablesGrouped      = "tables_grouped"
	EventTablesUngrouped    = "tables_ungrouped"
)

// Notification is the envelope published to the events exchange whenever the
// core commits a state change downstream consumers care about.
type Notification struct {
	Event         string      `json:"event"`
	OrderID       int64       `json:"order_id,omitempty"`
	OrderTableID  int64       `json:"order_table_id,omitempty"`
	TableGroupID  int64       `json:"table_group_id,omitempty"`
	OrderTableIDs []int64     `json:"order_table_ids,omitempty"`
	OldStatus     OrderStatus `json:"old_status,omitempty"`
	NewStatus     OrderStatus `json:"new_status,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// NewOrderCreatedNotification announces a freshly created order.
func NewOrderCreatedNotification(order *Order) Notification {
	return Notification{
		Event:        EventOrderCreated,
		OrderID:      order.ID,
		OrderTableID: order.OrderTableID,
		NewStatus:    order.Status,
		OccurredAt:   time.Now().UTC(),
	}
}

// NewStatusChangedNotification announces an order status transition.
func NewStatusChangedNotification(order *Order, old OrderStatus) Notification {
	return Notification{
		Event:        EventOrderStatusChanged,
		OrderID:      order.ID,
		OrderTableID: order.OrderTableID,
		OldStatus:    old,
		NewStatus:    order.Status,
		OccurredAt:   time.Now().UTC(),
	}
}

// NewTablesGroupedNotification announces a new table group.
func NewTablesGroupedNotification(group *TableGroup) Notification {
	return Notification{
		Event:         EventTablesGrouped,
		TableGroupID:  group.ID,
		OrderTableIDs: group.TableIDs(),
		OccurredAt:    time.Now().UTC(),
	}
}

// NewTablesUngroupedNotification announces a dissolved table group.
func NewTablesUngroupedNotification(groupID int64, tableIDs []int64) Notification {
	return Notification{
		Event:         EventTablesUngrouped,
		TableGroupID:  groupID,
		OrderTableIDs: tableIDs,
		OccurredAt:    time.Now().UTC(),
	}
}
