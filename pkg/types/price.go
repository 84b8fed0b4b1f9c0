package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a non-negative decimal amount in the store currency. It encodes as a bare JSON
// number so persisted carts stay readable by any JSON consumer.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// PriceFromFloat is a convenience for fixtures and tests.
func PriceFromFloat(f float64) Price {
	return Price{Decimal: decimal.NewFromFloat(f)}
}

// MustParsePrice panics on malformed input; only use with literals.
func MustParsePrice(s string) Price {
	return Price{Decimal: decimal.RequireFromString(s)}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	p.Decimal = d
	return nil
}

// IsValid reports whether the amount is usable as a price.
func (p Price) IsValid() bool {
	return !p.Decimal.IsNegative()
}

// FormatCurrency renders an amount with a dollar sign and two decimals, e.g. "$25.00".
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
