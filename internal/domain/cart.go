package domain

import "github.com/shopspring/decimal"

// CartLine is one product in a user's open cart. Price is the snapshot
// UnitPrice × Quantity taken when the line was last added to.
type CartLine struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	ProductID   int64           `json:"productId"`
	UserName    string          `json:"userName"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"-"`
	Price       decimal.Decimal `json:"price"`
}
