package number

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Decimal parse v, invalid input is zero
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Percent format ratio as a percentage, 0.415 => "41.50%"
func Percent(ratio decimal.Decimal, precision int32) string {
	return ratio.Mul(hundred).StringFixed(precision) + "%"
}
