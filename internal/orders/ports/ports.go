package ports

import (
	"context"

	"go-storefront/internal/orders/domain"
)

// ConfirmationPublisher defines the interface for the order-confirmation
// channel. Actual delivery (email, queue, webhook) is an adapter concern;
// the order service only emits the event.
type ConfirmationPublisher interface {
	// PublishOrderConfirmation announces a freshly created order to the
	// confirmation channel
	PublishOrderConfirmation(ctx context.Context, order domain.Order) error
}
