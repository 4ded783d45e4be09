package core

import (
	"github.com/holiman/uint256"
)

// MaxReserves reserves addressable by the 256-bit user bitmap
const MaxReserves = 128

// UserConfiguration two bits per reserve id: bit 2*id is "borrowing",
// bit 2*id+1 is "using as collateral". The id is the reserve's position in
// the reserve store, so the two must stay aligned.
type UserConfiguration struct {
	data uint256.Int
}

// NewUserConfiguration wraps a raw bitmap
func NewUserConfiguration(data *uint256.Int) UserConfiguration {
	var c UserConfiguration
	if data != nil {
		c.data.Set(data)
	}

	return c
}

// Data raw bitmap copy
func (c UserConfiguration) Data() *uint256.Int {
	return new(uint256.Int).Set(&c.data)
}

func (c UserConfiguration) bit(n uint) bool {
	return new(uint256.Int).Rsh(&c.data, n).Uint64()&1 == 1
}

func (c *UserConfiguration) setBit(n uint, v bool) {
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), n)
	if v {
		c.data.Or(&c.data, mask)
	} else {
		c.data.And(&c.data, mask.Not(mask))
	}
}

func checkReserveIndex(id uint16) error {
	if id >= MaxReserves {
		return ErrInvalidReserveIndex
	}

	return nil
}

// SetBorrowing marks the reserve as borrowed or not
func (c *UserConfiguration) SetBorrowing(id uint16, borrowing bool) error {
	if err := checkReserveIndex(id); err != nil {
		return err
	}

	c.setBit(uint(id)*2, borrowing)
	return nil
}

// SetUsingAsCollateral marks the reserve as collateral or not
func (c *UserConfiguration) SetUsingAsCollateral(id uint16, usingAsCollateral bool) error {
	if err := checkReserveIndex(id); err != nil {
		return err
	}

	c.setBit(uint(id)*2+1, usingAsCollateral)
	return nil
}

// IsUsingAsCollateralOrBorrowing either bit of the reserve is set
func (c UserConfiguration) IsUsingAsCollateralOrBorrowing(id uint16) bool {
	if id >= MaxReserves {
		return false
	}

	return new(uint256.Int).Rsh(&c.data, uint(id)*2).Uint64()&3 != 0
}

// IsUsingAsCollateral collateral bit of the reserve
func (c UserConfiguration) IsUsingAsCollateral(id uint16) bool {
	if id >= MaxReserves {
		return false
	}

	return c.bit(uint(id)*2 + 1)
}

// IsBorrowing borrowing bit of the reserve
func (c UserConfiguration) IsBorrowing(id uint16) bool {
	if id >= MaxReserves {
		return false
	}

	return c.bit(uint(id) * 2)
}

// borrowingMask every even bit
var borrowingMask = func() *uint256.Int {
	m := new(uint256.Int)
	for i := uint(0); i < MaxReserves; i++ {
		m.Or(m, new(uint256.Int).Lsh(uint256.NewInt(1), i*2))
	}
	return m
}()

// IsBorrowingAny any borrowing bit set
func (c UserConfiguration) IsBorrowingAny() bool {
	return !new(uint256.Int).And(&c.data, borrowingMask).IsZero()
}

// IsEmpty no bit set
func (c UserConfiguration) IsEmpty() bool {
	return c.data.IsZero()
}
