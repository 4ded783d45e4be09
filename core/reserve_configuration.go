package core

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Bit layout of the packed reserve configuration. The layout doubles as the
// wire format of a configuration snapshot and must not change.
//
//	bit 0-15  ltv (bps)
//	bit 16-31 liquidation threshold (bps)
//	bit 32-47 liquidation bonus (bps)
//	bit 48-55 decimals
//	bit 56    active
//	bit 57    frozen
//	bit 58    borrowing enabled
//	bit 59    stable rate borrowing enabled
//	bit 60-63 reserved
//	bit 64-79 reserve factor (bps)
const (
	ltvStartBit                  = 0
	liquidationThresholdStartBit = 16
	liquidationBonusStartBit     = 32
	decimalsStartBit             = 48
	activeBit                    = 56
	frozenBit                    = 57
	borrowingEnabledBit          = 58
	stableBorrowingEnabledBit    = 59
	reserveFactorStartBit        = 64

	maxValidLTV                  = 1<<16 - 1
	maxValidLiquidationThreshold = 1<<16 - 1
	maxValidLiquidationBonus     = 1<<16 - 1
	maxValidDecimals             = 1<<8 - 1
	maxValidReserveFactor        = 1<<16 - 1
)

// ReserveConfiguration reserve risk parameters
type ReserveConfiguration struct {
	// LTV loan to value, in bps (7500 = 75%)
	LTV uint64 `json:"ltv"`
	// LiquidationThreshold in bps, 0 means the asset can't be collateral
	LiquidationThreshold uint64 `json:"liquidation_threshold"`
	// LiquidationBonus in bps, 10500 = 5% bonus
	LiquidationBonus uint64 `json:"liquidation_bonus"`
	// Decimals of the underlying token
	Decimals                uint64 `json:"decimals"`
	Active                  bool   `json:"active"`
	Frozen                  bool   `json:"frozen"`
	BorrowingEnabled        bool   `json:"borrowing_enabled"`
	StableBorrowRateEnabled bool   `json:"stable_borrow_rate_enabled"`
	// ReserveFactor share of accrued interest skimmed to the treasury, bps
	ReserveFactor uint64 `json:"reserve_factor"`
}

// Validate checks that every field fits its bit width
func (c ReserveConfiguration) Validate() error {
	checks := []struct {
		name  string
		value uint64
		max   uint64
	}{
		{"ltv", c.LTV, maxValidLTV},
		{"liquidation threshold", c.LiquidationThreshold, maxValidLiquidationThreshold},
		{"liquidation bonus", c.LiquidationBonus, maxValidLiquidationBonus},
		{"decimals", c.Decimals, maxValidDecimals},
		{"reserve factor", c.ReserveFactor, maxValidReserveFactor},
	}

	for _, check := range checks {
		if check.value > check.max {
			return errors.Wrapf(ErrInvalidConfigurationValue, "%s %d exceeds %d", check.name, check.value, check.max)
		}
	}

	return nil
}

// Encode packs the configuration into its 256-bit word
func (c ReserveConfiguration) Encode() (*uint256.Int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	word := new(uint256.Int)
	put := func(value uint64, startBit uint) {
		word.Or(word, new(uint256.Int).Lsh(uint256.NewInt(value), startBit))
	}

	put(c.LTV, ltvStartBit)
	put(c.LiquidationThreshold, liquidationThresholdStartBit)
	put(c.LiquidationBonus, liquidationBonusStartBit)
	put(c.Decimals, decimalsStartBit)
	put(boolToUint(c.Active), activeBit)
	put(boolToUint(c.Frozen), frozenBit)
	put(boolToUint(c.BorrowingEnabled), borrowingEnabledBit)
	put(boolToUint(c.StableBorrowRateEnabled), stableBorrowingEnabledBit)
	put(c.ReserveFactor, reserveFactorStartBit)

	return word, nil
}

// DecodeReserveConfiguration unpacks a configuration word
func DecodeReserveConfiguration(word *uint256.Int) ReserveConfiguration {
	get := func(startBit, width uint) uint64 {
		return new(uint256.Int).Rsh(word, startBit).Uint64() & (1<<width - 1)
	}

	return ReserveConfiguration{
		LTV:                     get(ltvStartBit, 16),
		LiquidationThreshold:    get(liquidationThresholdStartBit, 16),
		LiquidationBonus:        get(liquidationBonusStartBit, 16),
		Decimals:                get(decimalsStartBit, 8),
		Active:                  get(activeBit, 1) == 1,
		Frozen:                  get(frozenBit, 1) == 1,
		BorrowingEnabled:        get(borrowingEnabledBit, 1) == 1,
		StableBorrowRateEnabled: get(stableBorrowingEnabledBit, 1) == 1,
		ReserveFactor:           get(reserveFactorStartBit, 16),
	}
}

// Params returns ltv, liquidation threshold, liquidation bonus, decimals and reserve factor
func (c ReserveConfiguration) Params() (ltv, liquidationThreshold, liquidationBonus, decimals, reserveFactor uint64) {
	return c.LTV, c.LiquidationThreshold, c.LiquidationBonus, c.Decimals, c.ReserveFactor
}

// Flags returns active, frozen, borrowing enabled and stable borrowing enabled
func (c ReserveConfiguration) Flags() (active, frozen, borrowing, stableBorrowing bool) {
	return c.Active, c.Frozen, c.BorrowingEnabled, c.StableBorrowRateEnabled
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
