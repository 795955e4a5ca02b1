package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestComposeMenu(t *testing.T) {
	products := map[int64]Product{
		1: {ID: 1, Name: "fried chicken", Price: decimal.NewFromInt(1000)},
		2: {ID: 2, Name: "cola", Price: decimal.NewFromInt(300)},
	}

	tests := []struct {
		name     string
		req      CreateMenuRequest
		wantKind ErrorKind
	}{
		{
			name: "price equal to product total",
			req: CreateMenuRequest{
				Name:        "chicken set",
				Price:       price(1000),
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 1, Quantity: 1}},
			},
		},
		{
			name: "price below product total",
			req: CreateMenuRequest{
				Name:        "combo",
				Price:       price(1200),
				MenuGroupID: 1,
				Products: []MenuProductRequest{
					{ProductID: 1, Quantity: 1},
					{ProductID: 2, Quantity: 1},
				},
			},
		},
		{
			name: "price above product total",
			req: CreateMenuRequest{
				Name:        "chicken set",
				Price:       price(1001),
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 1, Quantity: 1}},
			},
			wantKind: KindInvalidPrice,
		},
		{
			name: "missing price",
			req: CreateMenuRequest{
				Name:        "chicken set",
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 1, Quantity: 1}},
			},
			wantKind: KindInvalidPrice,
		},
		{
			name: "negative price",
			req: CreateMenuRequest{
				Name:        "chicken set",
				Price:       price(-1),
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 1, Quantity: 1}},
			},
			wantKind: KindInvalidPrice,
		},
		{
			name: "unresolved product",
			req: CreateMenuRequest{
				Name:        "mystery set",
				Price:       price(100),
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 99, Quantity: 1}},
			},
			wantKind: KindInvalidReference,
		},
		{
			name: "negative quantity",
			req: CreateMenuRequest{
				Name:        "chicken set",
				Price:       price(100),
				MenuGroupID: 1,
				Products:    []MenuProductRequest{{ProductID: 1, Quantity: -1}},
			},
			wantKind: KindInvalidArgument,
		},
		{
			name: "missing name",
			req: CreateMenuRequest{
				Price:       price(100),
				MenuGroupID: 1,
			},
			wantKind: KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu, err := ComposeMenu(&tt.req, products)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Name, menu.Name)
			assert.Len(t, menu.Products, len(tt.req.Products))
		})
	}
}

func TestComposeMenu_SnapshotsProductPrices(t *testing.T) {
	products := map[int64]Product{
		1: {ID: 1, Name: "soup", Price: decimal.NewFromInt(500)},
	}

	menu, err := ComposeMenu(&CreateMenuRequest{
		Name:        "soup of the day",
		Price:       price(900),
		MenuGroupID: 1,
		Products:    []MenuProductRequest{{ProductID: 1, Quantity: 2}},
	}, products)
	require.NoError(t, err)

	require.Len(t, menu.Products, 1)
	assert.True(t, menu.Products[0].Price.Equal(decimal.NewFromInt(500)))
	assert.True(t, menu.Products[0].Amount().Equal(decimal.NewFromInt(1000)))
}

func TestCreateProductRequest(t *testing.T) {
	_, err := NewProduct(&CreateProductRequest{Name: "water", Price: price(0)})
	require.NoError(t, err)

	_, err = NewProduct(&CreateProductRequest{Name: "water"})
	assert.Equal(t, KindInvalidPrice, KindOf(err))

	_, err = NewProduct(&CreateProductRequest{Name: "water", Price: price(-10)})
	assert.Equal(t, KindInvalidPrice, KindOf(err))

	_, err = NewProduct(&CreateProductRequest{Price: price(10)})
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}
