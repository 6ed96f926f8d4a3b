package search

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice interpreta un precio decimal; vacío o inválido vale 0.
func ParsePrice(price string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPrice devuelve el precio con exactamente dos decimales ("15.5" -> "15.50").
func FormatPrice(price string) string {
	return ParsePrice(price).StringFixed(2)
}
