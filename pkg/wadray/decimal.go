package wadray

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// WadDecimals decimals of a wad value
	WadDecimals int32 = 18
	// RayDecimals decimals of a ray value
	RayDecimals int32 = 27
	// PercentDecimals decimals of a percentage value
	PercentDecimals int32 = 4
)

// ErrNegativeValue fixed-point values are unsigned
var ErrNegativeValue = errors.New("wadray: negative value")

// FromDecimal converts d into an unsigned integer with the given decimals.
// Digits beyond the precision are truncated.
func FromDecimal(d decimal.Decimal, decimals int32) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegativeValue
	}

	v, overflow := uint256.FromBig(d.Shift(decimals).Truncate(0).BigInt())
	if overflow {
		return nil, ErrMultiplicationOverflow
	}

	return v, nil
}

// ToDecimal converts a scaled integer back into a decimal
func ToDecimal(x *uint256.Int, decimals int32) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -decimals)
}

// RayFromString parses a human readable ratio, "0.05" => 0.05 ray
func RayFromString(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return FromDecimal(d, RayDecimals)
}

// MustRay is RayFromString that panics, for constants and tests
func MustRay(s string) *uint256.Int {
	v, err := RayFromString(s)
	if err != nil {
		panic(err)
	}

	return v
}

// MustWad parses s as a wad value and panics on error
func MustWad(s string) *uint256.Int {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	v, err := FromDecimal(d, WadDecimals)
	if err != nil {
		panic(err)
	}

	return v
}

// RayToDecimal renders a ray value
func RayToDecimal(x *uint256.Int) decimal.Decimal {
	return ToDecimal(x, RayDecimals)
}

// WadToDecimal renders a wad value
func WadToDecimal(x *uint256.Int) decimal.Decimal {
	return ToDecimal(x, WadDecimals)
}
