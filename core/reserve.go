package core

import (
	"context"

	"github.com/holiman/uint256"
)

// Reserve per-asset accrual state.
//
// Indices and rates are ray values. LiquidityIndex and VariableBorrowIndex
// start at one ray and only ever grow.
type Reserve struct {
	ID            uint16               `json:"id"`
	Asset         string               `json:"asset"`
	Configuration ReserveConfiguration `json:"configuration"`

	LiquidityIndex            *uint256.Int `json:"liquidity_index"`
	VariableBorrowIndex       *uint256.Int `json:"variable_borrow_index"`
	CurrentLiquidityRate      *uint256.Int `json:"current_liquidity_rate"`
	CurrentVariableBorrowRate *uint256.Int `json:"current_variable_borrow_rate"`
	CurrentStableBorrowRate   *uint256.Int `json:"current_stable_borrow_rate"`
	// LastUpdateTimestamp unix seconds truncated to 40 bits
	LastUpdateTimestamp uint64 `json:"last_update_timestamp"`

	DepositToken         IDepositToken         `json:"-"`
	StableDebtToken      IStableDebtToken      `json:"-"`
	VariableDebtToken    IVariableDebtToken    `json:"-"`
	InterestRateStrategy IInterestRateStrategy `json:"-"`

	Version int64 `json:"version"`
}

// Clone copies the reserve so changes can be made tentatively
func (r *Reserve) Clone() *Reserve {
	c := *r
	c.LiquidityIndex = cloneInt(r.LiquidityIndex)
	c.VariableBorrowIndex = cloneInt(r.VariableBorrowIndex)
	c.CurrentLiquidityRate = cloneInt(r.CurrentLiquidityRate)
	c.CurrentVariableBorrowRate = cloneInt(r.CurrentVariableBorrowRate)
	c.CurrentStableBorrowRate = cloneInt(r.CurrentStableBorrowRate)
	return &c
}

func cloneInt(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return new(uint256.Int).Set(x)
}

// ReserveInit collaborators and parameters of a new reserve
type ReserveInit struct {
	DepositToken         IDepositToken
	StableDebtToken      IStableDebtToken
	VariableDebtToken    IVariableDebtToken
	InterestRateStrategy IInterestRateStrategy
	Configuration        ReserveConfiguration
}

// IReserveStore reserve repository. Reserves live in a dense array indexed
// by id; the id doubles as the bit position in UserConfiguration.
type IReserveStore interface {
	// Add appends the reserve and assigns its id
	Add(ctx context.Context, reserve *Reserve) error
	// Find returns a copy of the reserve listed for asset
	Find(ctx context.Context, asset string) (*Reserve, error)
	// FindByID returns a copy of the reserve at position id
	FindByID(ctx context.Context, id uint16) (*Reserve, error)
	// Update saves the reserve if its version is still current
	Update(ctx context.Context, reserve *Reserve) error
	All(ctx context.Context) ([]*Reserve, error)
	Count(ctx context.Context) (int, error)
}

// IReserveIndexer read-only index projections, consumed by tokens that
// apply the indices when answering balance queries
type IReserveIndexer interface {
	NormalizedIncome(ctx context.Context, asset string) (*uint256.Int, error)
	NormalizedDebt(ctx context.Context, asset string) (*uint256.Int, error)
}

// IReserveService reserve accrual engine
type IReserveService interface {
	IReserveIndexer

	Init(ctx context.Context, asset string, init ReserveInit) (*Reserve, error)
	// UpdateState accrues interest since the last update and skims the treasury fee
	UpdateState(ctx context.Context, asset string) error
	// UpdateInterestRates refreshes the rates after liquidity moved
	UpdateInterestRates(ctx context.Context, asset string, liquidityAdded, liquidityTaken *uint256.Int) error
	// CumulateToLiquidityIndex distributes amount to depositors at once
	CumulateToLiquidityIndex(ctx context.Context, asset string, totalLiquidity, amount *uint256.Int) error
	Find(ctx context.Context, asset string) (*Reserve, error)
	All(ctx context.Context) ([]*Reserve, error)
}
