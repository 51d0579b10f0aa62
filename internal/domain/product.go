package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

const (
	InStock    = "IN_STOCK"
	LowStock   = "LOW_STOCK"
	OutOfStock = "OUT_OF_STOCK"

	lowStockThreshold = 5
)

type Availability struct {
	ProductID int64  `json:"productId"`
	Status    string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty       int    `json:"qty"`
}

// AvailabilityFor buckets a stock level.
func AvailabilityFor(productID int64, qty int) Availability {
	status := OutOfStock
	switch {
	case qty >= lowStockThreshold:
		status = InStock
	case qty > 0:
		status = LowStock
	}
	return Availability{ProductID: productID, Status: status, Qty: qty}
}
