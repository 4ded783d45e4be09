// Package wadray implements unsigned fixed-point arithmetic in two precisions:
// wad (1e18) for token amounts and ray (1e27) for rates and indices, plus
// percentage math scaled by 1e4.
//
// Every multiplication is checked against the 256-bit ceiling before scaling
// down. RayMul floors so collected interest never rounds up; the other scaled
// operations round half up.
package wadray

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrMultiplicationOverflow multiplication exceeds 256 bits
	ErrMultiplicationOverflow = errors.New("wadray: multiplication overflow")
	// ErrAdditionOverflow addition exceeds 256 bits
	ErrAdditionOverflow = errors.New("wadray: addition overflow")
	// ErrSubtractionUnderflow subtraction below zero
	ErrSubtractionUnderflow = errors.New("wadray: subtraction underflow")
	// ErrDivisionByZero zero denominator
	ErrDivisionByZero = errors.New("wadray: division by zero")
)

var (
	// WAD 1e18
	WAD = uint256.NewInt(1e18)
	// HalfWAD 0.5e18
	HalfWAD = uint256.NewInt(5e17)
	// RAY 1e27
	RAY = new(uint256.Int).Mul(uint256.NewInt(1e18), uint256.NewInt(1e9))
	// HalfRAY 0.5e27
	HalfRAY = new(uint256.Int).Rsh(RAY, 1)
	// WadRayRatio 1e9
	WadRayRatio = uint256.NewInt(1e9)
	// HalfWadRayRatio 0.5e9
	HalfWadRayRatio = uint256.NewInt(5e8)

	// PercentageFactor 100.00%
	PercentageFactor = uint256.NewInt(1e4)
	// HalfPercent 50.00%
	HalfPercent = uint256.NewInt(5e3)

	// SecondsPerYear 365 days
	SecondsPerYear = uint256.NewInt(365 * 24 * 3600)

	// MaxUint128 2^128-1, the storage ceiling for indices and rates
	MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	// MaxUint256 2^256-1
	MaxUint256 = new(uint256.Int).SetAllOne()
)

// Zero returns a fresh zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Ray returns a fresh copy of RAY
func Ray() *uint256.Int {
	return new(uint256.Int).Set(RAY)
}

// Wad returns a fresh copy of WAD
func Wad() *uint256.Int {
	return new(uint256.Int).Set(WAD)
}

// Add checked a + b
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrAdditionOverflow
	}

	return z, nil
}

// Sub checked a - b
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Lt(b) {
		return nil, ErrSubtractionUnderflow
	}

	return new(uint256.Int).Sub(a, b), nil
}

// Mul checked a * b
func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrMultiplicationOverflow
	}

	return z, nil
}

// Div floor(a / b)
func Div(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}

	return new(uint256.Int).Div(a, b), nil
}

// mulDiv (a*b + half) / scale with overflow checks, half zero floors
func mulDiv(a, b, half, scale *uint256.Int) (*uint256.Int, error) {
	if a.IsZero() || b.IsZero() {
		return Zero(), nil
	}

	product, err := Mul(a, b)
	if err != nil {
		return nil, err
	}

	product, err = Add(product, half)
	if err != nil {
		return nil, ErrMultiplicationOverflow
	}

	return product.Div(product, scale), nil
}

// divHalfUp (a*scale + b/2) / b with overflow checks
func divHalfUp(a, b, scale *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrDivisionByZero
	}

	numerator, err := Mul(a, scale)
	if err != nil {
		return nil, err
	}

	numerator, err = Add(numerator, new(uint256.Int).Rsh(b, 1))
	if err != nil {
		return nil, ErrMultiplicationOverflow
	}

	return numerator.Div(numerator, b), nil
}

// RayMul floor(a*b / RAY)
func RayMul(a, b *uint256.Int) (*uint256.Int, error) {
	return mulDiv(a, b, Zero(), RAY)
}

// RayDiv a/b, half up to RAY
func RayDiv(a, b *uint256.Int) (*uint256.Int, error) {
	return divHalfUp(a, b, RAY)
}

// WadMul a*b, half up to WAD
func WadMul(a, b *uint256.Int) (*uint256.Int, error) {
	return mulDiv(a, b, HalfWAD, WAD)
}

// WadDiv a/b, half up to WAD
func WadDiv(a, b *uint256.Int) (*uint256.Int, error) {
	return divHalfUp(a, b, WAD)
}

// WadToRay x * 1e9
func WadToRay(x *uint256.Int) (*uint256.Int, error) {
	return Mul(x, WadRayRatio)
}

// RayToWad x / 1e9, half up
func RayToWad(x *uint256.Int) (*uint256.Int, error) {
	z, err := Add(x, HalfWadRayRatio)
	if err != nil {
		return nil, err
	}

	return z.Div(z, WadRayRatio), nil
}

// PercentMul value * percentage / 1e4, half up.
// percentage is expressed with two decimals (10000 = 100.00%)
func PercentMul(value, percentage *uint256.Int) (*uint256.Int, error) {
	return mulDiv(value, percentage, HalfPercent, PercentageFactor)
}

// PercentDiv value * 1e4 / percentage, half up
func PercentDiv(value, percentage *uint256.Int) (*uint256.Int, error) {
	return divHalfUp(value, percentage, PercentageFactor)
}

// FitsUint128 reports whether x fits the 128-bit storage ceiling
func FitsUint128(x *uint256.Int) bool {
	return !x.Gt(MaxUint128)
}
