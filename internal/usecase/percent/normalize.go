package percent

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Normalize canonicalizes a stored percentage into a fraction.
// Values whose magnitude is greater than 1 are whole-number percent (25 -> 0.25);
// anything else is already a fraction. An input of exactly 1 stays 1 (100%).
func Normalize(value decimal.Decimal) decimal.Decimal {
	if value.Abs().GreaterThan(decimal.NewFromInt(1)) {
		return value.Div(hundred)
	}
	return value
}

// NormalizeFloat is Normalize for float inputs. NaN and infinities become 0
// so they never reach monetary math.
func NormalizeFloat(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return Normalize(decimal.NewFromFloat(value))
}

// NormalizePtr treats a missing percentage as zero
func NormalizePtr(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return Normalize(*value)
}
