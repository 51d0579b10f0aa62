package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
)

type Order struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderItem is frozen at checkout; later product price changes never reach it.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     string          `json:"-"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Price       decimal.Decimal `json:"price"`
}

// NewOrder snapshots cart lines into a confirmed order. Item order follows the
// cart and TotalAmount is the sum of the line prices.
func NewOrder(userID int64, lines []CartLine, now time.Time) Order {
	o := Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: decimal.Zero,
		Status:      OrderConfirmed,
		Items:       make([]OrderItem, 0, len(lines)),
		CreatedAt:   now.UTC(),
	}
	for _, l := range lines {
		o.Items = append(o.Items, OrderItem{
			OrderID:     o.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Price:       l.Price,
		})
		o.TotalAmount = o.TotalAmount.Add(l.Price)
	}
	return o
}
