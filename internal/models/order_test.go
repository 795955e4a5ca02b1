package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_ChangeStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  OrderStatus
		next     OrderStatus
		wantKind ErrorKind
	}{
		{name: "cooking to meal", current: StatusCooking, next: StatusMeal},
		{name: "meal to completion", current: StatusMeal, next: StatusCompletion},
		{name: "cooking straight to completion", current: StatusCooking, next: StatusCompletion},
		// Sequencing between COOKING and MEAL is intentionally permissive.
		{name: "meal back to cooking", current: StatusMeal, next: StatusCooking},
		{name: "completion is terminal", current: StatusCompletion, next: StatusMeal, wantKind: KindInvalidStatus},
		{name: "unknown status", current: StatusCooking, next: OrderStatus("BURNT"), wantKind: KindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{ID: 1, Status: tt.current}
			err := order.ChangeStatus(tt.next)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, KindOf(err))
				assert.Equal(t, tt.current, order.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, order.Status)
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("MEAL")
	require.NoError(t, err)
	assert.Equal(t, StatusMeal, status)

	_, err = ParseOrderStatus("meal")
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestOrderStatus_Active(t *testing.T) {
	assert.True(t, StatusCooking.Active())
	assert.True(t, StatusMeal.Active())
	assert.False(t, StatusCompletion.Active())
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	err := (&CreateOrderRequest{OrderTableID: 1}).Validate()
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	err = (&CreateOrderRequest{
		OrderTableID: 1,
		LineItems:    []OrderLineItemRequest{{MenuID: 1, Quantity: -1}},
	}).Validate()
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	req := CreateOrderRequest{
		OrderTableID: 1,
		LineItems: []OrderLineItemRequest{
			{MenuID: 1, Quantity: 2},
			{MenuID: 2, Quantity: 1},
		},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, []int64{1, 2}, req.MenuIDs())
}
