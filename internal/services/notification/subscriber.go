package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"pos-system/internal/logger"
	"pos-system/internal/messaging"
	"pos-system/internal/models"
)

// Subscriber consumes domain event notifications and surfaces them for floor
// staff displays.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a notification subscriber.
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes notifications until the context is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func (s *Subscriber) handleNotification(_ context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var notification models.Notification
	if err := json.Unmarshal(body, &notification); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	fmt.Println(formatNotification(&notification))

	s.logger.Info("notification_displayed", "Notification displayed", requestID, map[string]interface{}{
		"event":          notification.Event,
		"order_id":       notification.OrderID,
		"table_group_id": notification.TableGroupID,
	})

	return nil
}

func formatNotification(n *models.Notification) string {
	timestamp := n.OccurredAt.Format("2006-01-02 15:04:05")

	switch n.Event {
	case models.EventOrderCreated:
		return fmt.Sprintf("[%s] Order %d placed at table %d, kitchen is cooking.",
			timestamp, n.OrderID, n.OrderTableID)
	case models.EventOrderStatusChanged:
		switch n.NewStatus {
		case models.StatusMeal:
			return fmt.Sprintf("[%s] Order %d is served at table %d.",
				timestamp, n.OrderID, n.OrderTableID)
		case models.StatusCompletion:
			return fmt.Sprintf("[%s] Order %d at table %d is completed.",
				timestamp, n.OrderID, n.OrderTableID)
		default:
			return fmt.Sprintf("[%s] Order %d changed from %s to %s.",
				timestamp, n.OrderID, n.OldStatus, n.NewStatus)
		}
	case models.EventTablesGrouped:
		return fmt.Sprintf("[%s] Tables %v joined into group %d.",
			timestamp, n.OrderTableIDs, n.TableGroupID)
	case models.EventTablesUngrouped:
		return fmt.Sprintf("[%s] Group %d dissolved, tables %v are on their own again.",
			timestamp, n.TableGroupID, n.OrderTableIDs)
	default:
		return fmt.Sprintf("[%s] Unknown event %q.", timestamp, n.Event)
	}
}
