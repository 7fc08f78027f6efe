package application

import (
	"context"

	"go.uber.org/zap"

	cartdomain "go-storefront/internal/cart/domain"
	"go-storefront/internal/orders/domain"
	"go-storefront/internal/orders/ports"
	"go-storefront/pkg/kvstore"
	"go-storefront/pkg/logger"
	"go-storefront/pkg/store"
)

// OrderService owns the list of placed orders. Orders are created exactly
// once, at checkout, from a cart snapshot, and afterwards change only
// through status transitions.
type OrderService struct {
	orders    *store.Store[string, domain.Order]
	publisher ports.ConfirmationPublisher
	log       *logger.Logger
}

// NewOrderService creates an order service whose initial state is loaded
// from the snapshot persisted under key. publisher may be nil when no
// confirmation channel is configured.
func NewOrderService(ctx context.Context, kv kvstore.Store, key string, publisher ports.ConfirmationPublisher, log *logger.Logger) *OrderService {
	return &OrderService{
		orders: store.New(ctx, store.Options[string, domain.Order]{
			KeyOf:    func(o domain.Order) string { return o.ID },
			Clone:    domain.Order.Clone,
			Snapshot: store.NewSnapshot[domain.Order](kv, key, log),
			Log:      log,
		}),
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder captures a pending order from the given line items and
// customer record, persists it, and emits a confirmation event. The item
// slice is deep-copied; later cart mutations cannot alter the order.
// Clearing the cart afterwards is the caller's responsibility.
//
// CustomerInfo is assumed pre-validated; calling with required fields
// absent is a precondition violation.
func (s *OrderService) CreateOrder(ctx context.Context, items []cartdomain.LineItem, customer domain.CustomerInfo) domain.Order {
	order := domain.NewOrder(items, customer)

	s.orders.Upsert(ctx, order)

	// Confirmation delivery is best effort; a failure never undoes the order
	if s.publisher != nil {
		if err := s.publisher.PublishOrderConfirmation(ctx, order); err != nil {
			s.log.WithContext(ctx).Error("failed to publish order confirmation",
				zap.Error(err),
				zap.String("order_id", order.ID),
			)
		}
	}

	s.log.WithContext(ctx).Info("order created",
		zap.String("order_id", order.ID),
		zap.String("email", customer.Email),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)

	return order
}

// Orders returns an independent copy of all placed orders
func (s *OrderService) Orders() []domain.Order {
	return s.orders.All()
}

// OrderByID returns the order with the given id, if present
func (s *OrderService) OrderByID(id string) (domain.Order, bool) {
	return s.orders.Find(id)
}

// UpdateStatus advances an order along the fulfillment progression.
// Unknown ids and out-of-order transitions are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.ErrUnknownStatus
	}

	order, ok := s.orders.Find(id)
	if !ok {
		return domain.NewOrderNotFound(id)
	}
	if !order.Status.CanTransitionTo(status) {
		return domain.NewInvalidTransition(order.Status, status)
	}

	s.orders.Update(ctx, id, func(o *domain.Order) {
		o.Status = status
	})

	s.log.WithContext(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// Subscribe registers a change callback and returns an unsubscribe func
func (s *OrderService) Subscribe(fn func()) func() {
	return s.orders.Subscribe(fn)
}
