package services

import (
	"math"

	"github.com/shopspring/decimal"

	"nailspa-backend/models"
)

// Totals is the computed money summary of a set of lines.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// Subtotal sums the line-extended prices.
func Subtotal(items []models.ServiceItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Price
	}
	return sum
}

var maxUnits = decimal.NewFromInt(math.MaxInt64)

// DiscountAmount converts a discount into currency units. Percent discounts
// round half-up on the subtotal; amounts are rounded to a whole unit.
// Amounts beyond int64 saturate so the total still clamps to zero.
func DiscountAmount(subtotal int64, value float64, discountType models.DiscountType) int64 {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	v := decimal.NewFromFloat(value)
	if discountType == models.DiscountPercent {
		v = decimal.NewFromInt(subtotal).Mul(v).Div(decimal.NewFromInt(100))
	}
	v = v.Round(0)
	if v.GreaterThan(maxUnits) {
		return math.MaxInt64
	}
	return v.IntPart()
}

// Total clamps subtotal minus discount at zero.
func Total(subtotal, discount int64) int64 {
	if discount >= subtotal {
		return 0
	}
	return subtotal - discount
}

func Compute(items []models.ServiceItem, value float64, discountType models.DiscountType) Totals {
	subtotal := Subtotal(items)
	discount := DiscountAmount(subtotal, value, discountType)
	return Totals{Subtotal: subtotal, Discount: discount, Total: Total(subtotal, discount)}
}
