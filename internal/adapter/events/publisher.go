package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/workhive/paymentd/internal/domain/model"
)

const (
	routingKeySucceeded = "payment.succeeded"
	routingKeyFailed    = "payment.failed"
)

// Publisher emits payment lifecycle events for downstream consumers.
type Publisher interface {
	PaymentSucceeded(ctx context.Context, order *model.Order) error
	PaymentFailed(ctx context.Context, order *model.Order, status model.TransactionStatus) error
	Close() error
}

// PaymentEvent is the wire form of a payment lifecycle event.
type PaymentEvent struct {
	OrderID       string `json:"order_id"`
	UserID        int64  `json:"user_id"`
	Amount        int64  `json:"amount"`
	ProductID     string `json:"product_id"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes payment events to a topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the topic exchange.
func NewAMQPPublisher(addr, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// PaymentSucceeded publishes a payment.succeeded event.
func (p *AMQPPublisher) PaymentSucceeded(ctx context.Context, order *model.Order) error {
	return p.publish(ctx, routingKeySucceeded, order, string(model.TransactionStatusSettlement))
}

// PaymentFailed publishes a payment.failed event carrying the terminal status.
func (p *AMQPPublisher) PaymentFailed(ctx context.Context, order *model.Order, status model.TransactionStatus) error {
	return p.publish(ctx, routingKeyFailed, order, string(status))
}

func (p *AMQPPublisher) publish(ctx context.Context, key string, order *model.Order, status string) error {
	body, err := json.Marshal(PaymentEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.Amount,
		ProductID:     order.ProductID,
		PaymentMethod: string(order.PaymentMethod),
		Status:        status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	p.logger.Debug("payment event published", "routing_key", key, "order_id", order.ID)
	return nil
}

// Close releases the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

// PaymentSucceeded does nothing.
func (NopPublisher) PaymentSucceeded(context.Context, *model.Order) error { return nil }

// PaymentFailed does nothing.
func (NopPublisher) PaymentFailed(context.Context, *model.Order, model.TransactionStatus) error {
	return nil
}

// Close does nothing.
func (NopPublisher) Close() error { return nil }
