package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"pos-system/internal/database"
	"pos-system/internal/models"
)

// ProductRepository is the PostgreSQL ProductStore.
type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.QueryRow(ctx, database.InsertProductSQL,
		product.Name, product.Price.String(),
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, database.GetProductByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) FindAllByIDIn(ctx context.Context, ids []int64) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, database.GetProductsByIDsSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, database.GetAllProductsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		product  models.Product
		rawPrice string
	)
	if err := row.Scan(&product.ID, &product.Name, &rawPrice, &product.CreatedAt); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price: %w", err)
	}
	product.Price = price
	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// MenuGroupRepository is the PostgreSQL MenuGroupStore.
type MenuGroupRepository struct {
	db *database.DB
}

func NewMenuGroupRepository(db *database.DB) *MenuGroupRepository {
	return &MenuGroupRepository{db: db}
}

func (r *MenuGroupRepository) Save(ctx context.Context, group *models.MenuGroup) error {
	return r.db.QueryRow(ctx, database.InsertMenuGroupSQL, group.Name).
		Scan(&group.ID, &group.CreatedAt)
}

func (r *MenuGroupRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.MenuGroupExistsSQL, id).Scan(&exists)
	return exists, err
}

func (r *MenuGroupRepository) FindAll(ctx context.Context) ([]models.MenuGroup, error) {
	rows, err := r.db.Query(ctx, database.GetAllMenuGroupsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.MenuGroup
	for rows.Next() {
		var group models.MenuGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// MenuRepository is the PostgreSQL MenuStore. It also serves the order
// service's menu resolution query.
type MenuRepository struct {
	db *database.DB
}

func NewMenuRepository(db *database.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Save writes the menu and its lines in one transaction.
func (r *MenuRepository) Save(ctx context.Context, menu *models.Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertMenuSQL,
		menu.Name, menu.Price.String(), menu.MenuGroupID,
	).Scan(&menu.ID, &menu.CreatedAt)
	if err != nil {
		return err
	}

	for i := range menu.Products {
		line := &menu.Products[i]
		line.MenuID = menu.ID
		err = tx.QueryRow(ctx, database.InsertMenuProductSQL,
			line.MenuID, line.ProductID, line.Quantity, line.Price.String(),
		).Scan(&line.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *MenuRepository) FindAll(ctx context.Context) ([]models.Menu, error) {
	rows, err := r.db.Query(ctx, database.GetAllMenusSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []models.Menu
	for rows.Next() {
		var (
			menu     models.Menu
			rawPrice string
		)
		if err := rows.Scan(&menu.ID, &menu.Name, &rawPrice, &menu.MenuGroupID, &menu.CreatedAt); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to parse menu price: %w", err)
		}
		menu.Price = price
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range menus {
		lines, err := r.findLines(ctx, menus[i].ID)
		if err != nil {
			return nil, err
		}
		menus[i].Products = lines
	}

	return menus, nil
}

// CountByIDIn reports how many of the given menu ids exist.
func (r *MenuRepository) CountByIDIn(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, database.CountMenusByIDsSQL, ids).Scan(&count)
	return count, err
}

func (r *MenuRepository) findLines(ctx context.Context, menuID int64) ([]models.MenuProduct, error) {
	rows, err := r.db.Query(ctx, database.GetMenuProductsByMenuIDSQL, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.MenuProduct
	for rows.Next() {
		var (
			line     models.MenuProduct
			rawPrice string
		)
		if err := rows.Scan(&line.ID, &line.MenuID, &line.ProductID, &line.Quantity, &rawPrice); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to parse menu product price: %w", err)
		}
		line.Price = price
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
