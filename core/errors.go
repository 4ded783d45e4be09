package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrReserveNotFound no reserve listed for the asset
	ErrReserveNotFound ErrorCode = 100100
	// ErrReserveAlreadyInitialized reserve listed twice
	ErrReserveAlreadyInitialized ErrorCode = 100101
	// ErrInvalidConfigurationValue configuration field exceeds its bit width
	ErrInvalidConfigurationValue ErrorCode = 100102
	// ErrInvalidReserveIndex reserve id outside the user bitmap
	ErrInvalidReserveIndex ErrorCode = 100103
	// ErrNoMoreReservesAllowed reserve count reached MaxReserves
	ErrNoMoreReservesAllowed ErrorCode = 100104
	// ErrInvalidOptimalUtilization optimal utilization must be in (0, 1) ray
	ErrInvalidOptimalUtilization ErrorCode = 100105
	// ErrInvalidReserveFactor reserve factor above 100%
	ErrInvalidReserveFactor ErrorCode = 100106
	// ErrMissingCollaborator token or strategy reference not provided
	ErrMissingCollaborator ErrorCode = 100107
	// ErrOptimisticLock reserve was updated concurrently
	ErrOptimisticLock ErrorCode = 100108
	// ErrTimestampInPast current time is before the last update
	ErrTimestampInPast ErrorCode = 100109

	// ErrLiquidityIndexOverflow liquidity index exceeds 128 bits
	ErrLiquidityIndexOverflow ErrorCode = 100200
	// ErrVariableBorrowIndexOverflow variable borrow index exceeds 128 bits
	ErrVariableBorrowIndexOverflow ErrorCode = 100201
	// ErrLiquidityRateOverflow liquidity rate exceeds 128 bits
	ErrLiquidityRateOverflow ErrorCode = 100202
	// ErrStableBorrowRateOverflow stable borrow rate exceeds 128 bits
	ErrStableBorrowRateOverflow ErrorCode = 100203
	// ErrVariableBorrowRateOverflow variable borrow rate exceeds 128 bits
	ErrVariableBorrowRateOverflow ErrorCode = 100204

	// ErrInsufficientLiquidity liquidity taken exceeds available liquidity
	ErrInsufficientLiquidity ErrorCode = 100300
	// ErrCollateralUnderflow decrease is worth more than the whole collateral
	ErrCollateralUnderflow ErrorCode = 100301
	// ErrInvalidPrice price oracle returned zero
	ErrInvalidPrice ErrorCode = 100302
	// ErrInsufficientBalance token balance lower than the burn amount
	ErrInsufficientBalance ErrorCode = 100303
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
