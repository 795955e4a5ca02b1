package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"pos-system/internal/logger"
	"pos-system/internal/models"
)

// Publisher publishes domain event notifications to the events exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a publisher over an established connection.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// Publish sends one notification to the fanout exchange.
func (p *Publisher) Publish(ctx context.Context, notification models.Notification) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		EventsExchange,
		"",    // routing key ignored for fanout
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("event_publish_failed",
			fmt.Sprintf("Failed to publish %s event", notification.Event),
			"", err, map[string]interface{}{
				"event": notification.Event,
			})
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("event_published",
		fmt.Sprintf("Published %s event", notification.Event),
		"", map[string]interface{}{
			"event":        notification.Event,
			"message_size": len(body),
		})

	return nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
