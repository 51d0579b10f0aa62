package domain

import "github.com/shopspring/decimal"

// Prices travel as JSON numbers; decoding accepts numbers and strings.
func init() { decimal.MarshalJSONWithoutQuotes = true }

// Cents converts money to the integer cents sqlite stores.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
