package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTable_SetEmpty(t *testing.T) {
	table := OrderTable{ID: 1, Empty: true}

	require.NoError(t, table.SetEmpty(false))
	assert.False(t, table.Empty)

	groupID := int64(7)
	grouped := OrderTable{ID: 2, TableGroupID: &groupID}
	err := grouped.SetEmpty(true)
	assert.Equal(t, KindInvalidStatus, KindOf(err))
}

func TestOrderTable_SetNumberOfGuests(t *testing.T) {
	tests := []struct {
		name     string
		table    OrderTable
		count    int
		wantKind ErrorKind
	}{
		{name: "occupied table", table: OrderTable{ID: 1, Empty: false}, count: 4},
		{name: "zero guests", table: OrderTable{ID: 1, Empty: false}, count: 0},
		{name: "negative count", table: OrderTable{ID: 1, Empty: false}, count: -1, wantKind: KindInvalidGuestCount},
		{name: "empty table", table: OrderTable{ID: 1, Empty: true}, count: 4, wantKind: KindInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.SetNumberOfGuests(tt.count)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.count, tt.table.NumberOfGuests)
		})
	}
}

func TestOrderTable_JoinGroupAndUngroup(t *testing.T) {
	table := OrderTable{ID: 3, Empty: true}

	require.NoError(t, table.JoinGroup(9))
	assert.False(t, table.Empty)
	require.NotNil(t, table.TableGroupID)
	assert.EqualValues(t, 9, *table.TableGroupID)

	// Already grouped tables cannot join again.
	err := table.JoinGroup(10)
	assert.Equal(t, KindInvalidStatus, KindOf(err))

	// Ungrouping clears the reference but keeps occupancy.
	table.Ungroup()
	assert.Nil(t, table.TableGroupID)
	assert.False(t, table.Empty)
}

func TestOrderTable_CanGroup(t *testing.T) {
	groupID := int64(1)

	occupied := OrderTable{ID: 1, Empty: false}
	assert.Equal(t, KindInvalidStatus, KindOf(occupied.CanGroup()))

	grouped := OrderTable{ID: 2, Empty: true, TableGroupID: &groupID}
	assert.Equal(t, KindInvalidStatus, KindOf(grouped.CanGroup()))

	fresh := OrderTable{ID: 3, Empty: true}
	assert.NoError(t, fresh.CanGroup())
}

func TestCreateTableRequest(t *testing.T) {
	// Guests may be seated before the table is marked occupied.
	table, err := NewOrderTable(&CreateTableRequest{NumberOfGuests: 3, Empty: true})
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumberOfGuests)
	assert.True(t, table.Empty)

	_, err = NewOrderTable(&CreateTableRequest{NumberOfGuests: -1})
	assert.Equal(t, KindInvalidGuestCount, KindOf(err))
}

func TestCreateTableGroupRequest(t *testing.T) {
	err := (&CreateTableGroupRequest{OrderTableIDs: []int64{1}}).Validate()
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	assert.NoError(t, (&CreateTableGroupRequest{OrderTableIDs: []int64{1, 2}}).Validate())
}
