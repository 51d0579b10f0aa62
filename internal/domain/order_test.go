package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderSnapshotsLines(t *testing.T) {
	now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("X", 3600))
	lines := []CartLine{
		{ProductID: 1, ProductName: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(10), Price: decimal.NewFromInt(20)},
		{ProductID: 2, ProductName: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("0.99"), Price: decimal.RequireFromString("0.99")},
	}

	o := NewOrder(7, lines, now)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, OrderConfirmed, o.Status)
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.99")))
	require.Len(t, o.Items, 2)
	assert.Equal(t, int64(2), o.Items[1].ProductID)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	empty := NewOrder(7, nil, now)
	assert.True(t, empty.TotalAmount.IsZero())
	assert.NotEqual(t, o.ID, empty.ID)
}

func TestMoneyHelpers(t *testing.T) {
	assert.Equal(t, int64(1235), Cents(decimal.RequireFromString("12.345")))
	assert.True(t, FromCents(1999).Equal(decimal.RequireFromString("19.99")))
}

func TestAvailabilityFor(t *testing.T) {
	assert.Equal(t, InStock, AvailabilityFor(1, 5).Status)
	assert.Equal(t, LowStock, AvailabilityFor(1, 4).Status)
	assert.Equal(t, OutOfStock, AvailabilityFor(1, 0).Status)
}

func TestPricesEncodeAsJSONNumbers(t *testing.T) {
	raw, err := json.Marshal(Product{ID: 1, Price: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":12.5`)

	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"price":"7.25"}`), &p))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("7.25")))
	require.NoError(t, json.Unmarshal([]byte(`{"price":7.25}`), &p))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("7.25")))
}
