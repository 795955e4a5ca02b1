package database

// Catalog queries
const (
	InsertProductSQL = `
		INSERT INTO products (name, price)
		VALUES ($1, $2)
		RETURNING id, created_at`

	GetProductByIDSQL = `
		SELECT id, name, price, created_at
		FROM products WHERE id = $1`

	GetProductsByIDsSQL = `
		SELECT id, name, price, created_at
		FROM products WHERE id = ANY($1)`

	GetAllProductsSQL = `
		SELECT id, name, price, created_at
		FROM products ORDER BY id ASC`

	InsertMenuGroupSQL = `
		INSERT INTO menu_groups (name)
		VALUES ($1)
		RETURNING id, created_at`

	MenuGroupExistsSQL = `
		SELECT EXISTS (SELECT 1 FROM menu_groups WHERE id = $1)`

	GetAllMenuGroupsSQL = `
		SELECT id, name, created_at
		FROM menu_groups ORDER BY id ASC`

	InsertMenuSQL = `
		INSERT INTO menus (name, price, menu_group_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	InsertMenuProductSQL = `
		INSERT INTO menu_products (menu_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetAllMenusSQL = `
		SELECT id, name, price, menu_group_id, created_at
		FROM menus ORDER BY id ASC`

	GetMenuProductsByMenuIDSQL = `
		SELECT id, menu_id, product_id, quantity, price
		FROM menu_products WHERE menu_id = $1 ORDER BY id ASC`

	CountMenusByIDsSQL = `
		SELECT COUNT(*) FROM menus WHERE id = ANY($1)`
)

// Table queries
const (
	InsertOrderTableSQL = `
		INSERT INTO order_tables (number_of_guests, empty)
		VALUES ($1, $2)
		RETURNING id, created_at`

	UpdateOrderTableSQL = `
		UPDATE order_tables
		SET table_group_id = $1, number_of_guests = $2, empty = $3
		WHERE id = $4`

	GetOrderTableByIDSQL = `
		SELECT id, table_group_id, number_of_guests, empty, created_at
		FROM order_tables WHERE id = $1`

	GetOrderTablesByIDsSQL = `
		SELECT id, table_group_id, number_of_guests, empty, created_at
		FROM order_tables WHERE id = ANY($1) ORDER BY id ASC`

	GetOrderTablesByGroupIDSQL = `
		SELECT id, table_group_id, number_of_guests, empty, created_at
		FROM order_tables WHERE table_group_id = $1 ORDER BY id ASC`

	GetAllOrderTablesSQL = `
		SELECT id, table_group_id, number_of_guests, empty, created_at
		FROM order_tables ORDER BY id ASC`

	InsertTableGroupSQL = `
		INSERT INTO table_groups DEFAULT VALUES
		RETURNING id, created_at`

	AssignTablesToGroupSQL = `
		UPDATE order_tables
		SET table_group_id = $1, empty = FALSE
		WHERE id = ANY($2)`

	ClearTableGroupSQL = `
		UPDATE order_tables
		SET table_group_id = NULL
		WHERE table_group_id = $1`

	GetTableGroupByIDSQL = `
		SELECT id, created_at
		FROM table_groups WHERE id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (order_table_id, status, ordered_time)
		VALUES ($1, $2, $3)
		RETURNING id`

	InsertOrderLineItemSQL = `
		INSERT INTO order_line_items (order_id, menu_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`

	GetOrderByIDSQL = `
		SELECT id, order_table_id, status, ordered_time
		FROM orders WHERE id = $1`

	GetOrderLineItemsByOrderIDSQL = `
		SELECT id, order_id, menu_id, quantity
		FROM order_line_items WHERE order_id = $1 ORDER BY id ASC`

	GetAllOrdersSQL = `
		SELECT id, order_table_id, status, ordered_time
		FROM orders ORDER BY id ASC`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1 WHERE id = $2`

	ActiveOrdersExistSQL = `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE order_table_id = ANY($1) AND status = ANY($2)
		)`
)
