package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdomain "go-storefront/internal/cart/domain"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// statusRank orders the statuses along the fulfillment progression
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether next is the immediate successor of s.
// Orders move strictly pending -> confirmed -> shipped -> delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// PaymentMethod is the closed set of supported payment selectors
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
)

// CustomerInfo is the checkout contact and shipping record. Fields are
// assumed pre-validated by the caller; the model enforces nothing.
type CustomerInfo struct {
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	PostalCode    string        `json:"postalCode"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Order is an immutable snapshot of cart contents captured at checkout,
// plus its fulfillment status. Later cart mutations never alter a placed
// order: the items are a deep copy owned by the order.
type Order struct {
	ID        string                `json:"id"`
	Items     []cartdomain.LineItem `json:"items"`
	Customer  CustomerInfo          `json:"customer"`
	Total     float64               `json:"total"`
	Status    OrderStatus           `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
}

// NewOrder captures a pending order from a cart snapshot.
// The item slice is copied, not referenced.
func NewOrder(items []cartdomain.LineItem, customer CustomerInfo) Order {
	snapshot := cartdomain.CopyItems(items)

	var total float64
	for _, item := range snapshot {
		total += item.Subtotal()
	}

	return Order{
		ID:        NewOrderID(),
		Items:     snapshot,
		Customer:  customer,
		Total:     total,
		Status:    OrderStatusPending,
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	out := o
	out.Items = cartdomain.CopyItems(o.Items)
	return out
}

// NewOrderID generates a human-inspectable order id combining a truncated
// millisecond timestamp with a random suffix. The random component keeps
// two ids generated within the same millisecond from colliding.
func NewOrderID() string {
	timestamp := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(timestamp) > 6 {
		timestamp = timestamp[len(timestamp)-6:]
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("MW-%s-%s", timestamp, strings.ToUpper(random))
}
