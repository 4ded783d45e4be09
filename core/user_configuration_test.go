package core

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfiguration(t *testing.T) {
	var c UserConfiguration
	assert.True(t, c.IsEmpty())
	assert.False(t, c.IsBorrowingAny())

	require.Nil(t, c.SetUsingAsCollateral(0, true))
	assert.True(t, c.IsUsingAsCollateral(0))
	assert.False(t, c.IsBorrowing(0))
	assert.True(t, c.IsUsingAsCollateralOrBorrowing(0))
	assert.False(t, c.IsBorrowingAny())
	assert.Equal(t, uint64(2), c.Data().Uint64())

	require.Nil(t, c.SetBorrowing(3, true))
	assert.True(t, c.IsBorrowing(3))
	assert.True(t, c.IsBorrowingAny())
	assert.False(t, c.IsUsingAsCollateralOrBorrowing(1))
	assert.Equal(t, uint64(2|1<<6), c.Data().Uint64())

	require.Nil(t, c.SetBorrowing(3, false))
	require.Nil(t, c.SetUsingAsCollateral(0, false))
	assert.True(t, c.IsEmpty())
}

func TestUserConfigurationHighReserve(t *testing.T) {
	var c UserConfiguration
	require.Nil(t, c.SetBorrowing(MaxReserves-1, true))
	assert.True(t, c.IsBorrowingAny())
	assert.True(t, c.IsBorrowing(MaxReserves-1))

	expect := new(uint256.Int).Lsh(uint256.NewInt(1), 2*(MaxReserves-1))
	assert.Equal(t, expect.Hex(), c.Data().Hex())

	assert.ErrorIs(t, c.SetBorrowing(MaxReserves, true), ErrInvalidReserveIndex)
	assert.False(t, c.IsBorrowing(MaxReserves))
}

func TestNewUserConfigurationCopies(t *testing.T) {
	raw := uint256.NewInt(3)
	c := NewUserConfiguration(raw)
	raw.SetUint64(0)

	assert.True(t, c.IsBorrowing(0))
	assert.True(t, c.IsUsingAsCollateral(0))
}
