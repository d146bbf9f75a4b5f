package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts a decimal price string into the processor's minor
// units. Fractions of a minor unit are truncated, never rounded: "19.999"
// becomes 1999.
func ToMinorUnits(price string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", price, domain.ErrInvalidPrice)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("price %q is negative: %w", price, domain.ErrInvalidPrice)
	}
	minor := d.Mul(hundred).Truncate(0)
	if minor.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("price %q is too large: %w", price, domain.ErrInvalidPrice)
	}
	return minor.IntPart(), nil
}

// validPrice reports whether price is a non-negative decimal amount.
func validPrice(price string) bool {
	_, err := ToMinorUnits(price)
	return err == nil
}
