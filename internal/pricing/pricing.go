// Package pricing derives suggested retail prices from wholesale cost.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/digitalhaute/internal/model"
)

var two = decimal.NewFromInt(2)

// Retail applies the markup multiplier and rounding mode in settings to a
// wholesale price. Unknown rounding modes round to the cent.
func Retail(wholesale float64, settings model.AppSettings) float64 {
	return RetailDecimal(decimal.NewFromFloat(wholesale), settings).InexactFloat64()
}

// RetailDecimal is Retail on decimal values.
func RetailDecimal(wholesale decimal.Decimal, settings model.AppSettings) decimal.Decimal {
	raw := wholesale.Mul(decimal.NewFromFloat(settings.MarkupMultiplier))

	switch settings.RoundingMode {
	case model.RoundUp:
		return raw.Ceil()
	case model.RoundEven:
		whole := raw.Ceil()
		if !whole.Mod(two).IsZero() {
			whole = whole.Add(decimal.NewFromInt(1))
		}
		return whole
	default:
		return raw.Round(2)
	}
}
