package models

import "time"

// OrderTable is a physical seating unit. Empty means currently unoccupied.
// A table belongs to at most one table group at a time.
type OrderTable struct {
	ID             int64     `json:"id,omitempty" db:"id"`
	TableGroupID   *int64    `json:"table_group_id,omitempty" db:"table_group_id"`
	NumberOfGuests int       `json:"number_of_guests" db:"number_of_guests"`
	Empty          bool      `json:"empty" db:"empty"`
	CreatedAt      time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Grouped reports whether the table currently belongs to a table group.
func (t *OrderTable) Grouped() bool {
	return t.TableGroupID != nil
}

// SetEmpty toggles occupancy. Grouped tables cannot change occupancy; the
// active-order guard is the caller's responsibility.
func (t *OrderTable) SetEmpty(empty bool) error {
	if t.Grouped() {
		return AlreadyGrouped(t.ID)
	}
	t.Empty = empty
	return nil
}

// SetNumberOfGuests changes the guest count of an occupied table.
func (t *OrderTable) SetNumberOfGuests(count int) error {
	if count < 0 {
		return InvalidGuestCount(count)
	}
	if t.Empty {
		return InvalidStatus("cannot set guests on empty table %d", t.ID)
	}
	t.NumberOfGuests = count
	return nil
}

// CanGroup reports whether the table is eligible to join a new table group.
func (t *OrderTable) CanGroup() error {
	if !t.Empty {
		return InvalidStatus("table %d is not empty", t.ID)
	}
	if t.Grouped() {
		return InvalidStatus("table %d already belongs to a table group", t.ID)
	}
	return nil
}

// JoinGroup puts the table into a group. A grouped table becomes immediately
// occupied for ordering purposes.
func (t *OrderTable) JoinGroup(groupID int64) error {
	if err := t.CanGroup(); err != nil {
		return err
	}
	t.TableGroupID = &groupID
	t.Empty = false
	return nil
}

// Ungroup clears the group reference. Occupancy is left untouched.
func (t *OrderTable) Ungroup() {
	t.TableGroupID = nil
}

// TableGroup is a set of tables merged for shared billing and occupancy.
type TableGroup struct {
	ID          int64        `json:"id,omitempty" db:"id"`
	CreatedAt   time.Time    `json:"created_at,omitempty" db:"created_at"`
	OrderTables []OrderTable `json:"order_tables"`
}

// TableIDs returns the ids of all member tables.
func (g *TableGroup) TableIDs() []int64 {
	ids := make([]int64, 0, len(g.OrderTables))
	for _, t := range g.OrderTables {
		ids = append(ids, t.ID)
	}
	return ids
}

// CreateTableRequest represents the request to create a new order table.
// A guest count may be set even for an empty table; real seating happens
// before ordering.
type CreateTableRequest struct {
	NumberOfGuests int  `json:"number_of_guests"`
	Empty          bool `json:"empty"`
}

func (r *CreateTableRequest) Validate() error {
	if r.NumberOfGuests < 0 {
		return InvalidGuestCount(r.NumberOfGuests)
	}
	return nil
}

// NewOrderTable builds a table from a validated request.
func NewOrderTable(r *CreateTableRequest) (*OrderTable, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &OrderTable{
		NumberOfGuests: r.NumberOfGuests,
		Empty:          r.Empty,
	}, nil
}

// CreateTableGroupRequest represents the request to group tables.
type CreateTableGroupRequest struct {
	OrderTableIDs []int64 `json:"order_table_ids"`
}

func (r *CreateTableGroupRequest) Validate() error {
	if len(r.OrderTableIDs) < 2 {
		return InvalidArgument("a table group needs at least 2 tables, got %d", len(r.OrderTableIDs))
	}
	return nil
}
