package store

import (
	"sync"

	"go.uber.org/zap"

	"go-storefront/pkg/logger"
)

// subscriber pairs a callback with a registration id so unsubscribing
// removes exactly one registration even when the same func is registered twice
type subscriber struct {
	id uint64
	fn func()
}

// notifier maintains the ordered set of change subscribers
type notifier struct {
	mu   sync.Mutex
	next uint64
	subs []subscriber
	log  *logger.Logger
}

func newNotifier(log *logger.Logger) *notifier {
	return &notifier{log: log}
}

// subscribe registers fn and returns an idempotent unsubscribe func
func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// notifyAll invokes every registered callback in registration order.
// A panicking callback must not prevent the remaining callbacks from running.
func (n *notifier) notifyAll() {
	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, sub := range subs {
		n.invoke(sub)
	}
}

func (n *notifier) invoke(sub subscriber) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("subscriber callback panicked",
				zap.Uint64("subscriber_id", sub.id),
				zap.Any("panic", r),
			)
		}
	}()
	sub.fn()
}
