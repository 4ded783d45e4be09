package compound

import (
	"testing"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const year = 365 * 24 * 3600

func TestCalculateLinearInterest(t *testing.T) {
	factor, err := CalculateLinearInterest(wadray.MustRay("0.05"), 1000, 1000+year)
	require.Nil(t, err)
	assert.Equal(t, wadray.MustRay("1.05").Dec(), factor.Dec())

	factor, err = CalculateLinearInterest(wadray.MustRay("0.05"), 1000, 1000)
	require.Nil(t, err)
	assert.True(t, factor.Eq(wadray.RAY))

	// half a year
	factor, err = CalculateLinearInterest(wadray.MustRay("0.1"), 0, year/2)
	require.Nil(t, err)
	assert.Equal(t, wadray.MustRay("1.05").Dec(), factor.Dec())

	_, err = CalculateLinearInterest(wadray.MustRay("0.05"), 10, 9)
	assert.ErrorIs(t, err, core.ErrTimestampInPast)
}

func TestCalculateCompoundedInterest(t *testing.T) {
	rate := wadray.MustRay("0.1")
	rps := new(uint256.Int).Div(rate, wadray.SecondsPerYear)

	factor, err := CalculateCompoundedInterest(rate, 50, 50)
	require.Nil(t, err)
	assert.True(t, factor.Eq(wadray.RAY))

	// one second: no second order term
	factor, err = CalculateCompoundedInterest(rate, 50, 51)
	require.Nil(t, err)
	assert.Equal(t, new(uint256.Int).Add(wadray.RAY, rps).Dec(), factor.Dec())

	// two seconds: 2*rps + rps^2
	factor, err = CalculateCompoundedInterest(rate, 50, 52)
	require.Nil(t, err)
	sq, _ := wadray.RayMul(rps, rps)
	expect := new(uint256.Int).Add(wadray.RAY, new(uint256.Int).Mul(rps, uint256.NewInt(2)))
	expect.Add(expect, sq)
	assert.Equal(t, expect.Dec(), factor.Dec())

	_, err = CalculateCompoundedInterest(rate, 52, 50)
	assert.ErrorIs(t, err, core.ErrTimestampInPast)
}

func TestCompoundedInterestIsSecondOrder(t *testing.T) {
	// exact e^0.1 is 1.10517..., the second order expansion stops near 1.105
	factor, err := CalculateCompoundedInterest(wadray.MustRay("0.1"), 0, year)
	require.Nil(t, err)

	d := wadray.RayToDecimal(factor)
	assert.True(t, d.GreaterThan(decimal.RequireFromString("1.1049")), d.String())
	assert.True(t, d.LessThan(decimal.RequireFromString("1.1051")), d.String())

	linear, err := CalculateLinearInterest(wadray.MustRay("0.1"), 0, year)
	require.Nil(t, err)
	assert.True(t, factor.Gt(linear))
}
