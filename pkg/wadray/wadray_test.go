package wadray

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayMul(t *testing.T) {
	v, err := RayMul(MustRay("1.5"), MustRay("2"))
	require.Nil(t, err)
	assert.Equal(t, MustRay("3").Dec(), v.Dec())

	// 1 wei * 0.5 ray floors
	v, err = RayMul(uint256.NewInt(1), HalfRAY)
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	// 3 wei * 0.5 ray is 1.5 wei, floored to 1
	v, err = RayMul(uint256.NewInt(3), HalfRAY)
	require.Nil(t, err)
	assert.Equal(t, uint64(1), v.Uint64())

	// 1 wei * 0.999.. ray floors
	v, err = RayMul(uint256.NewInt(1), new(uint256.Int).Sub(RAY, uint256.NewInt(1)))
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	v, err = RayMul(Zero(), MaxUint256)
	require.Nil(t, err)
	assert.True(t, v.IsZero())
}

func TestRayMulOverflow(t *testing.T) {
	_, err := RayMul(MaxUint256, uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrMultiplicationOverflow)

	// floor adds nothing, a fitting product never overflows
	v, err := RayMul(MaxUint256, uint256.NewInt(1))
	require.Nil(t, err)
	assert.Equal(t, new(uint256.Int).Div(MaxUint256, RAY).Dec(), v.Dec())

	// wad math still rounds half up, so the same edge overflows there
	_, err = WadMul(MaxUint256, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrMultiplicationOverflow)
}

func TestRayDiv(t *testing.T) {
	v, err := RayDiv(MustRay("1"), MustRay("3"))
	require.Nil(t, err)
	assert.Equal(t, "333333333333333333333333333", v.Dec())

	v, err = RayDiv(MustRay("2"), MustRay("3"))
	require.Nil(t, err)
	assert.Equal(t, "666666666666666666666666667", v.Dec())

	_, err = RayDiv(RAY, Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// dividing a value by itself is exactly one ray
	u := MustRay("0.837461")
	v, err = RayDiv(u, u)
	require.Nil(t, err)
	assert.True(t, v.Eq(RAY))
}

func TestWadMath(t *testing.T) {
	v, err := WadMul(MustWad("2.5"), MustWad("4"))
	require.Nil(t, err)
	assert.Equal(t, MustWad("10").Dec(), v.Dec())

	v, err = WadDiv(MustWad("1"), MustWad("4"))
	require.Nil(t, err)
	assert.Equal(t, MustWad("0.25").Dec(), v.Dec())

	_, err = WadDiv(WAD, Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestConversions(t *testing.T) {
	v, err := WadToRay(MustWad("1.25"))
	require.Nil(t, err)
	assert.True(t, v.Eq(MustRay("1.25")))

	v, err = RayToWad(uint256.NewInt(1_500_000_000))
	require.Nil(t, err)
	assert.Equal(t, uint64(2), v.Uint64())

	v, err = RayToWad(uint256.NewInt(1_499_999_999))
	require.Nil(t, err)
	assert.Equal(t, uint64(1), v.Uint64())

	_, err = WadToRay(MaxUint256)
	assert.ErrorIs(t, err, ErrMultiplicationOverflow)
}

func TestPercentMath(t *testing.T) {
	v, err := PercentMul(uint256.NewInt(1000), uint256.NewInt(8000))
	require.Nil(t, err)
	assert.Equal(t, uint64(800), v.Uint64())

	// 3 * 50.00% = 1.5 -> 2
	v, err = PercentMul(uint256.NewInt(3), uint256.NewInt(5000))
	require.Nil(t, err)
	assert.Equal(t, uint64(2), v.Uint64())

	v, err = PercentMul(uint256.NewInt(1000), Zero())
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	v, err = PercentDiv(uint256.NewInt(800), uint256.NewInt(8000))
	require.Nil(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())

	_, err = PercentDiv(uint256.NewInt(800), Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := Add(MaxUint256, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrAdditionOverflow)

	_, err = Sub(uint256.NewInt(1), uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrSubtractionUnderflow)

	_, err = Div(uint256.NewInt(1), Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	assert.True(t, FitsUint128(MaxUint128))
	assert.False(t, FitsUint128(new(uint256.Int).Add(MaxUint128, uint256.NewInt(1))))
}

func TestDecimalRoundTrip(t *testing.T) {
	r := MustRay("0.05")
	assert.Equal(t, "50000000000000000000000000", r.Dec())
	assert.Equal(t, "0.05", RayToDecimal(r).String())
	assert.Equal(t, "1.5", WadToDecimal(MustWad("1.5")).String())

	_, err := RayFromString("-1")
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = RayFromString("abc")
	assert.NotNil(t, err)
}
