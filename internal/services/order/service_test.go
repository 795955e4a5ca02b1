package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

type fakeOrderStore struct {
	orders map[int64]models.Order
	nextID int64
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[int64]models.Order)}
}

func (f *fakeOrderStore) Save(_ context.Context, order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id int64) (*models.Order, error) {
	if order, ok := f.orders[id]; ok {
		return &order, nil
	}
	return nil, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, order *models.Order) error {
	stored := f.orders[order.ID]
	stored.Status = order.Status
	f.orders[order.ID] = stored
	return nil
}

func (f *fakeOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	var all []models.Order
	for _, order := range f.orders {
		all = append(all, order)
	}
	return all, nil
}

func (f *fakeOrderStore) ExistsByTableIDsAndStatusIn(_ context.Context, tableIDs []int64, statuses []models.OrderStatus) (bool, error) {
	for _, order := range f.orders {
		for _, id := range tableIDs {
			if order.OrderTableID != id {
				continue
			}
			for _, status := range statuses {
				if order.Status == status {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

type fakeMenuStore struct {
	menuIDs map[int64]bool
}

func newFakeMenuStore(ids ...int64) *fakeMenuStore {
	menus := make(map[int64]bool, len(ids))
	for _, id := range ids {
		menus[id] = true
	}
	return &fakeMenuStore{menuIDs: menus}
}

func (f *fakeMenuStore) CountByIDIn(_ context.Context, ids []int64) (int64, error) {
	seen := make(map[int64]bool)
	var count int64
	for _, id := range ids {
		if f.menuIDs[id] && !seen[id] {
			seen[id] = true
			count++
		}
	}
	return count, nil
}

type fakeTableStore struct {
	tables map[int64]models.OrderTable
}

func newFakeTableStore(tables ...models.OrderTable) *fakeTableStore {
	byID := make(map[int64]models.OrderTable, len(tables))
	for _, table := range tables {
		byID[table.ID] = table
	}
	return &fakeTableStore{tables: byID}
}

func (f *fakeTableStore) FindByID(_ context.Context, id int64) (*models.OrderTable, error) {
	if table, ok := f.tables[id]; ok {
		return &table, nil
	}
	return nil, nil
}

type fakeNotifier struct {
	published []models.Notification
}

func (f *fakeNotifier) Publish(_ context.Context, notification models.Notification) error {
	f.published = append(f.published, notification)
	return nil
}

type orderFixture struct {
	service  *Service
	orders   *fakeOrderStore
	notifier *fakeNotifier
}

func newOrderFixture(menus *fakeMenuStore, tables *fakeTableStore) *orderFixture {
	orders := newFakeOrderStore()
	notifier := &fakeNotifier{}
	return &orderFixture{
		service:  NewService(orders, menus, tables, notifier, logger.New("order-test")),
		orders:   orders,
		notifier: notifier,
	}
}

func occupiedTable(id int64) models.OrderTable {
	return models.OrderTable{ID: id, NumberOfGuests: 2, Empty: false}
}

func emptyTable(id int64) models.OrderTable {
	return models.OrderTable{ID: id, Empty: true}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(newFakeMenuStore(1, 2), newFakeTableStore(occupiedTable(1)))

	order, err := f.service.CreateOrder(context.Background(), &models.CreateOrderRequest{
		OrderTableID: 1,
		LineItems: []models.OrderLineItemRequest{
			{MenuID: 1, Quantity: 2},
			{MenuID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusCooking, order.Status)
	assert.False(t, order.OrderedTime.IsZero())
	assert.Len(t, order.LineItems, 2)

	require.Len(t, f.notifier.published, 1)
	assert.Equal(t, models.EventOrderCreated, f.notifier.published[0].Event)
}

func TestCreateOrder_Failures(t *testing.T) {
	tests := []struct {
		name     string
		menus    *fakeMenuStore
		tables   *fakeTableStore
		req      models.CreateOrderRequest
		wantKind models.ErrorKind
	}{
		{
			name:     "no line items",
			menus:    newFakeMenuStore(1),
			tables:   newFakeTableStore(occupiedTable(1)),
			req:      models.CreateOrderRequest{OrderTableID: 1},
			wantKind: models.KindInvalidArgument,
		},
		{
			name:   "unresolved menu",
			menus:  newFakeMenuStore(1),
			tables: newFakeTableStore(occupiedTable(1)),
			req: models.CreateOrderRequest{
				OrderTableID: 1,
				LineItems:    []models.OrderLineItemRequest{{MenuID: 42, Quantity: 1}},
			},
			wantKind: models.KindInvalidReference,
		},
		{
			name:   "duplicate menu reference",
			menus:  newFakeMenuStore(1),
			tables: newFakeTableStore(occupiedTable(1)),
			req: models.CreateOrderRequest{
				OrderTableID: 1,
				LineItems: []models.OrderLineItemRequest{
					{MenuID: 1, Quantity: 1},
					{MenuID: 1, Quantity: 2},
				},
			},
			wantKind: models.KindInvalidReference,
		},
		{
			name:   "unresolved table",
			menus:  newFakeMenuStore(1),
			tables: newFakeTableStore(),
			req: models.CreateOrderRequest{
				OrderTableID: 1,
				LineItems:    []models.OrderLineItemRequest{{MenuID: 1, Quantity: 1}},
			},
			wantKind: models.KindNotFound,
		},
		{
			name:   "empty table",
			menus:  newFakeMenuStore(1),
			tables: newFakeTableStore(emptyTable(1)),
			req: models.CreateOrderRequest{
				OrderTableID: 1,
				LineItems:    []models.OrderLineItemRequest{{MenuID: 1, Quantity: 1}},
			},
			wantKind: models.KindInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(tt.menus, tt.tables)
			_, err := f.service.CreateOrder(context.Background(), &tt.req)
			assert.Equal(t, tt.wantKind, models.KindOf(err))
			assert.Empty(t, f.orders.orders)
			assert.Empty(t, f.notifier.published)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	f := newOrderFixture(newFakeMenuStore(1), newFakeTableStore(occupiedTable(1)))
	order, err := f.service.CreateOrder(context.Background(), &models.CreateOrderRequest{
		OrderTableID: 1,
		LineItems:    []models.OrderLineItemRequest{{MenuID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := f.service.ChangeStatus(context.Background(), order.ID, models.StatusCompletion)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompletion, updated.Status)

	// COMPLETION is terminal.
	_, err = f.service.ChangeStatus(context.Background(), order.ID, models.StatusMeal)
	assert.Equal(t, models.KindInvalidStatus, models.KindOf(err))

	stored, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompletion, stored.Status)

	require.Len(t, f.notifier.published, 2)
	change := f.notifier.published[1]
	assert.Equal(t, models.EventOrderStatusChanged, change.Event)
	assert.Equal(t, models.StatusCooking, change.OldStatus)
	assert.Equal(t, models.StatusCompletion, change.NewStatus)
}

func TestChangeStatus_UnknownOrder(t *testing.T) {
	f := newOrderFixture(newFakeMenuStore(1), newFakeTableStore(occupiedTable(1)))

	_, err := f.service.ChangeStatus(context.Background(), 42, models.StatusMeal)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestChangeStatus_UnknownStatus(t *testing.T) {
	f := newOrderFixture(newFakeMenuStore(1), newFakeTableStore(occupiedTable(1)))
	order, err := f.service.CreateOrder(context.Background(), &models.CreateOrderRequest{
		OrderTableID: 1,
		LineItems:    []models.OrderLineItemRequest{{MenuID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(context.Background(), order.ID, models.OrderStatus("BURNT"))
	assert.Equal(t, models.KindInvalidArgument, models.KindOf(err))
}

func TestHasActiveOrders(t *testing.T) {
	f := newOrderFixture(newFakeMenuStore(1), newFakeTableStore(occupiedTable(1)))
	order, err := f.service.CreateOrder(context.Background(), &models.CreateOrderRequest{
		OrderTableID: 1,
		LineItems:    []models.OrderLineItemRequest{{MenuID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	active, err := f.service.HasActiveOrders(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.True(t, active)

	active, err = f.service.HasActiveOrders(context.Background(), []int64{2})
	require.NoError(t, err)
	assert.False(t, active)

	_, err = f.service.ChangeStatus(context.Background(), order.ID, models.StatusCompletion)
	require.NoError(t, err)

	active, err = f.service.HasActiveOrders(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.False(t, active)
}
