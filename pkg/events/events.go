package events

import "time"

// Exchange names
const (
	ExchangeOrders = "orders.events"
)

// Routing keys
const (
	RoutingKeyOrderConfirmation = "order.confirmation"
)

// OrderConfirmationEvent is published when an order is placed
type OrderConfirmationEvent struct {
	Version   string                   `json:"version"`
	EventType string                   `json:"event_type"`
	Timestamp time.Time                `json:"timestamp"`
	TraceID   string                   `json:"trace_id"`
	Payload   OrderConfirmationPayload `json:"payload"`
}

// OrderConfirmationPayload contains the confirmation data: the order id,
// the recipient, and the order total
type OrderConfirmationPayload struct {
	OrderID   string    `json:"order_id"`
	Email     string    `json:"email"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrderConfirmationEvent creates a new OrderConfirmationEvent
func NewOrderConfirmationEvent(orderID, email string, total float64, status string, createdAt time.Time, traceID string) *OrderConfirmationEvent {
	return &OrderConfirmationEvent{
		Version:   "1.0",
		EventType: "order.confirmation",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderConfirmationPayload{
			OrderID:   orderID,
			Email:     email,
			Total:     total,
			Status:    status,
			CreatedAt: createdAt,
		},
	}
}
