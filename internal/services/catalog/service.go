package catalog

import (
	"context"
	"fmt"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

// ProductStore persists products. Lookups return (nil, nil) for a missing row.
type ProductStore interface {
	Save(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAllByIDIn(ctx context.Context, ids []int64) ([]models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
}

// MenuGroupStore persists menu groups.
type MenuGroupStore interface {
	Save(ctx context.Context, group *models.MenuGroup) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context) ([]models.MenuGroup, error)
}

// MenuStore persists menus together with their lines.
type MenuStore interface {
	Save(ctx context.Context, menu *models.Menu) error
	FindAll(ctx context.Context) ([]models.Menu, error)
}

// Service owns the product catalog and menu composition rules.
type Service struct {
	products   ProductStore
	menuGroups MenuGroupStore
	menus      MenuStore
	logger     *logger.Logger
}

// NewService creates a catalog service.
func NewService(products ProductStore, menuGroups MenuGroupStore, menus MenuStore, log *logger.Logger) *Service {
	return &Service{
		products:   products,
		menuGroups: menuGroups,
		menus:      menus,
		logger:     log,
	}
}

// CreateProduct validates and persists a new product.
func (s *Service) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product, err := models.NewProduct(req)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product_created", "Product created", "", map[string]interface{}{
		"product_id": product.ID,
		"price":      product.Price.String(),
	})

	return product, nil
}

// ListProducts returns all products.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

// CreateMenuGroup validates and persists a new menu group.
func (s *Service) CreateMenuGroup(ctx context.Context, req *models.CreateMenuGroupRequest) (*models.MenuGroup, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	group := &models.MenuGroup{Name: req.Name}
	if err := s.menuGroups.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save menu group: %w", err)
	}

	s.logger.Info("menu_group_created", "Menu group created", "", map[string]interface{}{
		"menu_group_id": group.ID,
	})

	return group, nil
}

// ListMenuGroups returns all menu groups.
func (s *Service) ListMenuGroups(ctx context.Context) ([]models.MenuGroup, error) {
	return s.menuGroups.FindAll(ctx)
}

// CreateMenu resolves the referenced menu group and products, enforces the
// price invariant, and persists the menu with its lines.
func (s *Service) CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.menuGroups.ExistsByID(ctx, req.MenuGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to check menu group: %w", err)
	}
	if !exists {
		return nil, models.InvalidReference("menu group", "id %d does not exist", req.MenuGroupID)
	}

	resolved, err := s.resolveProducts(ctx, req)
	if err != nil {
		return nil, err
	}

	menu, err := models.ComposeMenu(req, resolved)
	if err != nil {
		return nil, err
	}

	if err := s.menus.Save(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to save menu: %w", err)
	}

	s.logger.Info("menu_created", "Menu created", "", map[string]interface{}{
		"menu_id":       menu.ID,
		"menu_group_id": menu.MenuGroupID,
		"price":         menu.Price.String(),
		"lines":         len(menu.Products),
	})

	return menu, nil
}

// ListMenus returns all menus with their lines.
func (s *Service) ListMenus(ctx context.Context) ([]models.Menu, error) {
	return s.menus.FindAll(ctx)
}

func (s *Service) resolveProducts(ctx context.Context, req *models.CreateMenuRequest) (map[int64]models.Product, error) {
	unique := make([]int64, 0, len(req.Products))
	seen := make(map[int64]bool, len(req.Products))
	for _, line := range req.Products {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			unique = append(unique, line.ProductID)
		}
	}

	products, err := s.products.FindAllByIDIn(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	resolved := make(map[int64]models.Product, len(products))
	for _, p := range products {
		resolved[p.ID] = p
	}

	if len(resolved) != len(unique) {
		return nil, models.InvalidReference("product", "resolved %d of %d referenced products", len(resolved), len(unique))
	}

	return resolved, nil
}
