// Package events publishes domain events for downstream consumers
// (fulfilment, mailers). Events are sent after the order has committed.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o domain.Order) error
	Close() error
}

// OrderPlaced is the wire payload of an order.placed event.
type OrderPlaced struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"orderId"`
	UserID      int64           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []PlacedItem    `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type PlacedItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func NewOrderPlaced(o domain.Order) OrderPlaced {
	ev := OrderPlaced{
		Type:        "order.placed",
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Items:       make([]PlacedItem, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, PlacedItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return ev
}

type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, domain.Order) error { return nil }
func (NopPublisher) Close() error                                           { return nil }

// New returns a Kafka publisher, or a no-op one when no brokers are configured.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
