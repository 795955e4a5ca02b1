package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

func TestFormatNotification(t *testing.T) {
	occurred := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		notification models.Notification
		want         string
	}{
		{
			name: "order created",
			notification: models.Notification{
				Event:        models.EventOrderCreated,
				OrderID:      7,
				OrderTableID: 3,
				NewStatus:    models.StatusCooking,
				OccurredAt:   occurred,
			},
			want: "[2026-03-14 18:30:00] Order 7 placed at table 3, kitchen is cooking.",
		},
		{
			name: "order served",
			notification: models.Notification{
				Event:        models.EventOrderStatusChanged,
				OrderID:      7,
				OrderTableID: 3,
				OldStatus:    models.StatusCooking,
				NewStatus:    models.StatusMeal,
				OccurredAt:   occurred,
			},
			want: "[2026-03-14 18:30:00] Order 7 is served at table 3.",
		},
		{
			name: "order completed",
			notification: models.Notification{
				Event:        models.EventOrderStatusChanged,
				OrderID:      7,
				OrderTableID: 3,
				OldStatus:    models.StatusMeal,
				NewStatus:    models.StatusCompletion,
				OccurredAt:   occurred,
			},
			want: "[2026-03-14 18:30:00] Order 7 at table 3 is completed.",
		},
		{
			name: "status rollback",
			notification: models.Notification{
				Event:        models.EventOrderStatusChanged,
				OrderID:      7,
				OldStatus:    models.StatusMeal,
				NewStatus:    models.StatusCooking,
				OccurredAt:   occurred,
			},
			want: "[2026-03-14 18:30:00] Order 7 changed from MEAL to COOKING.",
		},
		{
			name: "tables grouped",
			notification: models.Notification{
				Event:         models.EventTablesGrouped,
				TableGroupID:  2,
				OrderTableIDs: []int64{4, 5},
				OccurredAt:    occurred,
			},
			want: "[2026-03-14 18:30:00] Tables [4 5] joined into group 2.",
		},
		{
			name: "tables ungrouped",
			notification: models.Notification{
				Event:         models.EventTablesUngrouped,
				TableGroupID:  2,
				OrderTableIDs: []int64{4, 5},
				OccurredAt:    occurred,
			},
			want: "[2026-03-14 18:30:00] Group 2 dissolved, tables [4 5] are on their own again.",
		},
		{
			name: "unknown event",
			notification: models.Notification{
				Event:      "table_danced",
				OccurredAt: occurred,
			},
			want: `[2026-03-14 18:30:00] Unknown event "table_danced".`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNotification(&tt.notification))
		})
	}
}

func TestHandleNotification(t *testing.T) {
	sub := NewSubscriber(nil, logger.New("notification-test"))

	body, err := json.Marshal(models.Notification{
		Event:        models.EventOrderCreated,
		OrderID:      1,
		OrderTableID: 1,
		OccurredAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.NoError(t, sub.handleNotification(context.Background(), body))
}

func TestHandleNotificationRejectsMalformedBody(t *testing.T) {
	sub := NewSubscriber(nil, logger.New("notification-test"))

	err := sub.handleNotification(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
