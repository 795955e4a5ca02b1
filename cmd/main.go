package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"pos-system/internal/config"
	"pos-system/internal/database"
	"pos-system/internal/logger"
	"pos-system/internal/messaging"
	"pos-system/internal/models"
	"pos-system/internal/services/catalog"
	"pos-system/internal/services/notification"
	"pos-system/internal/services/order"
	"pos-system/internal/services/table"
)

func main() {
	var (
		mode       = flag.String("mode", "", "Run mode (migrate, seed, notification-subscriber)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "migrate":
		if err := runMigrations(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Migrations failed", requestID, err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Seed run failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runMigrations applies pending schema migrations and exits.
func runMigrations(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return db.RunMigrations(ctx, "migrations")
}

// runSeed walks one full service day through the core services so a fresh
// deployment can be smoke-checked end to end: catalog setup, table layout,
// an order lifecycle, grouping and ungrouping.
func runSeed(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	products := catalog.NewProductRepository(db)
	menuGroups := catalog.NewMenuGroupRepository(db)
	menus := catalog.NewMenuRepository(db)
	tables := table.NewTableRepository(db)
	groups := table.NewGroupRepository(db)
	orders := order.NewOrderRepository(db)

	catalogService := catalog.NewService(products, menuGroups, menus, log)
	orderService := order.NewService(orders, menus, tables, publisher, log)
	tableService := table.NewService(tables, groups, orderService, publisher, log)

	return seedServiceDay(ctx, catalogService, tableService, orderService)
}

func seedServiceDay(ctx context.Context, catalogService *catalog.Service, tableService *table.Service, orderService *order.Service) error {
	margherita, err := catalogService.CreateProduct(ctx, &models.CreateProductRequest{
		Name:  "Margherita",
		Price: decimalPtr("9.50"),
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	cola, err := catalogService.CreateProduct(ctx, &models.CreateProductRequest{
		Name:  "Cola",
		Price: decimalPtr("2.00"),
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	group, err := catalogService.CreateMenuGroup(ctx, &models.CreateMenuGroupRequest{Name: "Lunch Sets"})
	if err != nil {
		return fmt.Errorf("failed to create menu group: %w", err)
	}

	menu, err := catalogService.CreateMenu(ctx, &models.CreateMenuRequest{
		Name:        "Pizza and Cola Set",
		Price:       decimalPtr("11.00"),
		MenuGroupID: group.ID,
		Products: []models.MenuProductRequest{
			{ProductID: margherita.ID, Quantity: 1},
			{ProductID: cola.ID, Quantity: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}

	first, err := tableService.CreateTable(ctx, &models.CreateTableRequest{NumberOfGuests: 2, Empty: false})
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	second, err := tableService.CreateTable(ctx, &models.CreateTableRequest{Empty: true})
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	third, err := tableService.CreateTable(ctx, &models.CreateTableRequest{Empty: true})
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	placed, err := orderService.CreateOrder(ctx, &models.CreateOrderRequest{
		OrderTableID: first.ID,
		LineItems:    []models.OrderLineItemRequest{{MenuID: menu.ID, Quantity: 2}},
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if _, err := orderService.ChangeStatus(ctx, placed.ID, models.StatusMeal); err != nil {
		return fmt.Errorf("failed to serve order: %w", err)
	}
	if _, err := orderService.ChangeStatus(ctx, placed.ID, models.StatusCompletion); err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	if _, err := tableService.ChangeEmpty(ctx, first.ID, true); err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}

	party, err := tableService.CreateGroup(ctx, &models.CreateTableGroupRequest{
		OrderTableIDs: []int64{second.ID, third.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to group tables: %w", err)
	}

	if err := tableService.Ungroup(ctx, party.ID); err != nil {
		return fmt.Errorf("failed to ungroup tables: %w", err)
	}

	return nil
}

// runNotificationSubscriber consumes notifications until shutdown.
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
