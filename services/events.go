package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kariqs/perfume-api/models"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload handed to every notifier.
type OrderEvent struct {
	Type       string        `json:"type"`
	Order      *models.Order `json:"order"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func newOrderEvent(eventType string, order *models.Order) OrderEvent {
	return OrderEvent{Type: eventType, Order: order, OccurredAt: time.Now().UTC()}
}

// Notifier delivers order events to an outside sink. Delivery runs after the
// order is committed; a failed delivery never undoes the order.
type Notifier interface {
	Notify(ctx context.Context, event OrderEvent) error
}

type namedNotifier struct {
	name string
	Notifier
}

// Notifiers fans an event out to every configured sink and logs failures.
type Notifiers struct {
	sinks []namedNotifier
}

func NewNotifiers() *Notifiers {
	return &Notifiers{}
}

func (n *Notifiers) Add(name string, notifier Notifier) {
	n.sinks = append(n.sinks, namedNotifier{name: name, Notifier: notifier})
}

func (n *Notifiers) Len() int {
	if n == nil {
		return 0
	}
	return len(n.sinks)
}

func (n *Notifiers) Publish(ctx context.Context, event OrderEvent) {
	if n == nil {
		return
	}
	for _, sink := range n.sinks {
		if err := sink.Notify(ctx, event); err != nil {
			slog.Error("Failed to deliver order event",
				"sink", sink.name,
				"event", event.Type,
				"order_number", event.Order.OrderNumber,
				"err", err)
		}
	}
}
