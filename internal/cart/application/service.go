package application

import (
	"context"

	"go-storefront/internal/cart/domain"
	"go-storefront/pkg/kvstore"
	"go-storefront/pkg/logger"
	"go-storefront/pkg/store"
)

// CartService owns the live, mutable line items of the active session.
// Every mutation is persisted and announced before it returns; persistence
// failures are logged, never surfaced, favoring availability of the caller
// over strict consistency signaling.
type CartService struct {
	items *store.Store[domain.ItemKey, domain.LineItem]
}

// NewCartService creates a cart whose initial state is loaded from the
// snapshot persisted under key
func NewCartService(ctx context.Context, kv kvstore.Store, key string, log *logger.Logger) *CartService {
	return &CartService{
		items: store.New(ctx, store.Options[domain.ItemKey, domain.LineItem]{
			KeyOf: domain.LineItem.Key,
			Merge: func(existing *domain.LineItem, incoming domain.LineItem) {
				existing.Quantity += incoming.Quantity
			},
			Snapshot: store.NewSnapshot[domain.LineItem](kv, key, log),
			Log:      log,
		}),
	}
}

// AddItem puts one unit of product into the cart. Adding a product already
// present under the same (product, size) identity increments its quantity.
func (s *CartService) AddItem(ctx context.Context, product domain.Product, size string) {
	s.items.Upsert(ctx, domain.NewLineItem(product, size))
}

// RemoveItem deletes a cart row. Removing an absent row is not an error.
func (s *CartService) RemoveItem(ctx context.Context, key domain.ItemKey) {
	s.items.Remove(ctx, key)
}

// UpdateQuantity sets the quantity of a row. A quantity of zero or less
// removes the row; a non-positive quantity is never stored.
func (s *CartService) UpdateQuantity(ctx context.Context, key domain.ItemKey, quantity int) {
	if quantity <= 0 {
		s.items.Remove(ctx, key)
		return
	}
	s.items.Update(ctx, key, func(item *domain.LineItem) {
		item.Quantity = quantity
	})
}

// Items returns an independent copy of the current cart contents
func (s *CartService) Items() []domain.LineItem {
	return s.items.All()
}

// Total returns the sum of price times quantity over the current cart,
// recomputed on every call
func (s *CartService) Total() float64 {
	var total float64
	for _, item := range s.items.All() {
		total += item.Subtotal()
	}
	return total
}

// ItemCount returns the total unit count over the current cart
func (s *CartService) ItemCount() int {
	var count int
	for _, item := range s.items.All() {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart. It is the caller's responsibility to clear the
// cart after a successful checkout; order creation never does it implicitly.
func (s *CartService) Clear(ctx context.Context) {
	s.items.Clear(ctx)
}

// Subscribe registers a change callback and returns an unsubscribe func
func (s *CartService) Subscribe(fn func()) func() {
	return s.items.Subscribe(fn)
}
