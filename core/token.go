package core

import (
	"context"

	"github.com/holiman/uint256"
)

// IDepositToken interest bearing deposit token of a reserve.
// Balances are index-adjusted.
type IDepositToken interface {
	BalanceOf(ctx context.Context, user string) (*uint256.Int, error)
	ScaledBalanceOf(ctx context.Context, user string) (*uint256.Int, error)
	ScaledTotalSupply(ctx context.Context) (*uint256.Int, error)
	// UnderlyingBalance liquidity held by the token, available to borrow
	UnderlyingBalance(ctx context.Context) (*uint256.Int, error)
	// MintToTreasury credits amount (underlying units) to the treasury at index
	MintToTreasury(ctx context.Context, treasury string, amount, index *uint256.Int) error
	// BurnFromTreasury debits amount (underlying units) from the treasury at
	// index, failing with ErrInsufficientBalance when the treasury holds less
	BurnFromTreasury(ctx context.Context, treasury string, amount, index *uint256.Int) error
}

// StableSupplyData snapshot of the stable debt supply
type StableSupplyData struct {
	PrincipalSupply *uint256.Int
	TotalSupply     *uint256.Int
	AvgRate         *uint256.Int
	LastUpdate      uint64
}

// IStableDebtToken stable rate debt token
type IStableDebtToken interface {
	BalanceOf(ctx context.Context, user string) (*uint256.Int, error)
	GetSupplyData(ctx context.Context) (*StableSupplyData, error)
	GetTotalSupplyAndAvgRate(ctx context.Context) (total, avgRate *uint256.Int, err error)
}

// IVariableDebtToken variable rate debt token, stored as scaled balances
type IVariableDebtToken interface {
	BalanceOf(ctx context.Context, user string) (*uint256.Int, error)
	ScaledBalanceOf(ctx context.Context, user string) (*uint256.Int, error)
	ScaledTotalSupply(ctx context.Context) (*uint256.Int, error)
}
