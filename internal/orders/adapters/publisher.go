package adapters

import (
	"context"

	"go.uber.org/zap"

	"go-storefront/internal/orders/domain"
	"go-storefront/pkg/events"
	"go-storefront/pkg/logger"
	"go-storefront/pkg/rabbitmq"
)

// RabbitMQPublisher implements ConfirmationPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ confirmation publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderConfirmation publishes an order confirmation event
func (p *RabbitMQPublisher) PublishOrderConfirmation(ctx context.Context, order domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderConfirmationEvent(
		order.ID,
		order.Customer.Email,
		order.Total,
		string(order.Status),
		order.CreatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderConfirmation, event)
}

// LogPublisher implements ConfirmationPublisher by logging the
// confirmation. It stands in when no message broker is configured.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher creates a log-only confirmation publisher
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// PublishOrderConfirmation logs the confirmation event
func (p *LogPublisher) PublishOrderConfirmation(ctx context.Context, order domain.Order) error {
	p.log.WithContext(ctx).Info("order confirmation sent",
		zap.String("order_id", order.ID),
		zap.String("email", order.Customer.Email),
		zap.Float64("total", order.Total),
	)
	return nil
}
