package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pos-system/internal/database"
	"pos-system/internal/models"
)

// TableRepository is the PostgreSQL TableStore.
type TableRepository struct {
	db *database.DB
}

func NewTableRepository(db *database.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Save(ctx context.Context, table *models.OrderTable) error {
	return r.db.QueryRow(ctx, database.InsertOrderTableSQL,
		table.NumberOfGuests, table.Empty,
	).Scan(&table.ID, &table.CreatedAt)
}

func (r *TableRepository) Update(ctx context.Context, table *models.OrderTable) error {
	return r.db.Exec(ctx, database.UpdateOrderTableSQL,
		table.TableGroupID, table.NumberOfGuests, table.Empty, table.ID)
}

func (r *TableRepository) FindByID(ctx context.Context, id int64) (*models.OrderTable, error) {
	table, err := scanTable(r.db.QueryRow(ctx, database.GetOrderTableByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *TableRepository) FindAllByIDIn(ctx context.Context, ids []int64) ([]models.OrderTable, error) {
	rows, err := r.db.Query(ctx, database.GetOrderTablesByIDsSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func (r *TableRepository) FindByTableGroupID(ctx context.Context, groupID int64) ([]models.OrderTable, error) {
	rows, err := r.db.Query(ctx, database.GetOrderTablesByGroupIDSQL, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func (r *TableRepository) FindAll(ctx context.Context) ([]models.OrderTable, error) {
	rows, err := r.db.Query(ctx, database.GetAllOrderTablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTables(rows)
}

func scanTable(row pgx.Row) (*models.OrderTable, error) {
	var table models.OrderTable
	err := row.Scan(&table.ID, &table.TableGroupID, &table.NumberOfGuests, &table.Empty, &table.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func collectTables(rows pgx.Rows) ([]models.OrderTable, error) {
	var tables []models.OrderTable
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

// GroupRepository is the PostgreSQL GroupStore.
type GroupRepository struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// SaveGroup inserts the group and assigns every member table to it in one
// transaction; member structs are updated to match.
func (r *GroupRepository) SaveGroup(ctx context.Context, group *models.TableGroup) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertTableGroupSQL).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return err
	}

	ids := group.TableIDs()
	if _, err := tx.Exec(ctx, database.AssignTablesToGroupSQL, group.ID, ids); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	for i := range group.OrderTables {
		groupID := group.ID
		group.OrderTables[i].TableGroupID = &groupID
		group.OrderTables[i].Empty = false
	}

	return nil
}

// ClearGroup detaches every member table from the group. Occupancy is left
// untouched and the group row is kept.
func (r *GroupRepository) ClearGroup(ctx context.Context, groupID int64) error {
	return r.db.Exec(ctx, database.ClearTableGroupSQL, groupID)
}

func (r *GroupRepository) FindGroupByID(ctx context.Context, id int64) (*models.TableGroup, error) {
	var group models.TableGroup
	err := r.db.QueryRow(ctx, database.GetTableGroupByIDSQL, id).Scan(&group.ID, &group.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}
