package token

import (
	"context"
	"sync"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
)

// VariableDebtToken in-memory variable rate debt. Balances are scaled by the
// variable borrow index.
type VariableDebtToken struct {
	asset   string
	indexer core.IReserveIndexer

	mu     sync.RWMutex
	ledger ledger
}

func NewVariableDebtToken(asset string, indexer core.IReserveIndexer) *VariableDebtToken {
	return &VariableDebtToken{
		asset:   asset,
		indexer: indexer,
		ledger:  newLedger(),
	}
}

func (t *VariableDebtToken) BalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	t.mu.RLock()
	scaled := t.ledger.balanceOf(user)
	t.mu.RUnlock()

	if scaled.IsZero() {
		return scaled, nil
	}

	index, err := t.indexer.NormalizedDebt(ctx, t.asset)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(scaled, index)
}

func (t *VariableDebtToken) ScaledBalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.ledger.balanceOf(user), nil
}

func (t *VariableDebtToken) ScaledTotalSupply(ctx context.Context) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.ledger.totalSupply(), nil
}

// Mint records amount borrowed by user at index
func (t *VariableDebtToken) Mint(ctx context.Context, user string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.mint(user, scaled)
}

// Burn records amount repaid by user at index
func (t *VariableDebtToken) Burn(ctx context.Context, user string, amount, index *uint256.Int) error {
	scaled, err := wadray.RayDiv(amount, index)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ledger.burn(user, scaled)
}
