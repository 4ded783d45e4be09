package token

import (
	"context"
	"sync"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// DepositToken in-memory interest bearing deposit token. Balances are kept
// scaled by the liquidity index and grow with the reserve's normalized income.
type DepositToken struct {
	asset   string
	indexer core.IReserveIndexer

	mu         sync.RWMutex
	ledger     ledger
	underlying *uint256.Int
}

// NewDepositToken deposit token of asset, reading indices from indexer
func NewDepositToken(asset string, indexer core.IReserveIndexer) *DepositToken {
	return &DepositToken{
		asset:      asset,
		indexer:    indexer,
		ledger:     newLedger(),
		underlying: wadray.Zero(),
	}
}

func (t *DepositToken) Asset() string {
	return t.asset
}

func (t *DepositToken) BalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	t.mu.RLock()
	scaled := t.ledger.balanceOf(user)
	t.mu.RUnlock()

	index, err := t.indexer.NormalizedIncome(ctx, t.asset)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(scaled, index)
}

func (t *DepositToken) ScaledBalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.ledger.balanceOf(user), nil
}

func (t *DepositToken) ScaledTotalSupply(ctx context.Context) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.ledger.totalSupply(), nil
}

// TotalSupply scaled supply at the current normalized income
func (t *DepositToken) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	t.mu.RLock()
	scaled := t.ledger.totalSupply()
	t.mu.RUnlock()

	index, err := t.indexer.NormalizedIncome(ctx, t.asset)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(scaled, index)
}

func (t *DepositToken) UnderlyingBalance(ctx context.Context) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return new(uint256.Int).Set(t.underlying), nil
}

// Mint deposits amount of the underlying for user at index
func (t *DepositToken) Mint(ctx context.Context, user string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	underlying, err := wadray.Add(t.underlying, amount)
	if err != nil {
		return err
	}

	if err := t.ledger.mint(user, scaled); err != nil {
		return err
	}

	t.underlying = underlying
	return nil
}

// Burn withdraws amount of the underlying from user at index
func (t *DepositToken) Burn(ctx context.Context, user string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.underlying.Lt(amount) {
		return errors.Wrapf(core.ErrInsufficientLiquidity, "withdraw %s, available %s", amount, t.underlying)
	}

	if err := t.ledger.burn(user, scaled); err != nil {
		return err
	}

	t.underlying = new(uint256.Int).Sub(t.underlying, amount)
	return nil
}

func (t *DepositToken) MintToTreasury(ctx context.Context, treasury string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.mint(treasury, scaled)
}

func (t *DepositToken) BurnFromTreasury(ctx context.Context, treasury string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.burn(treasury, scaled)
}

// TransferUnderlying moves liquidity out of the reserve, e.g. to a borrower
func (t *DepositToken) TransferUnderlying(ctx context.Context, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.underlying.Lt(amount) {
		return errors.Wrapf(core.ErrInsufficientLiquidity, "take %s, available %s", amount, t.underlying)
	}

	t.underlying = new(uint256.Int).Sub(t.underlying, amount)
	return nil
}

// ReceiveUnderlying moves liquidity into the reserve, e.g. a repayment
func (t *DepositToken) ReceiveUnderlying(ctx context.Context, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	underlying, err := wadray.Add(t.underlying, amount)
	if err != nil {
		return err
	}

	t.underlying = underlying
	return nil
}
