package token

import (
	"context"
	"sync"

	"lending/core"
	"lending/internal/compound"
	"lending/pkg/wadray"

	"github.com/facebookgo/clock"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

type stablePosition struct {
	principal  *uint256.Int
	rate       *uint256.Int
	lastUpdate uint64
}

// StableDebtToken in-memory stable rate debt. Every borrower keeps the rate
// of their last borrow; the supply compounds at the weighted average rate.
type StableDebtToken struct {
	asset string
	clock clock.Clock

	mu         sync.RWMutex
	positions  map[string]stablePosition
	supply     *uint256.Int
	avgRate    *uint256.Int
	lastUpdate uint64
}

func NewStableDebtToken(asset string, clk clock.Clock) *StableDebtToken {
	return &StableDebtToken{
		asset:     asset,
		clock:     clk,
		positions: make(map[string]stablePosition),
		supply:    wadray.Zero(),
		avgRate:   wadray.Zero(),
	}
}

func compoundedBalance(principal, rate *uint256.Int, lastUpdate, now uint64) (*uint256.Int, error) {
	if principal.IsZero() {
		return wadray.Zero(), nil
	}

	factor, err := compound.CalculateCompoundedInterest(rate, lastUpdate, now)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(principal, factor)
}

func (t *StableDebtToken) balanceOf(user string, now uint64) (*uint256.Int, error) {
	p, ok := t.positions[user]
	if !ok {
		return wadray.Zero(), nil
	}

	return compoundedBalance(p.principal, p.rate, p.lastUpdate, now)
}

func (t *StableDebtToken) BalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.balanceOf(user, compound.CurrentTimestamp(t.clock))
}

// UserStableRate rate the user is locked in
func (t *StableDebtToken) UserStableRate(ctx context.Context, user string) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if p, ok := t.positions[user]; ok {
		return new(uint256.Int).Set(p.rate)
	}

	return wadray.Zero()
}

func (t *StableDebtToken) totalSupply(now uint64) (*uint256.Int, error) {
	return compoundedBalance(t.supply, t.avgRate, t.lastUpdate, now)
}

func (t *StableDebtToken) GetSupplyData(ctx context.Context) (*core.StableSupplyData, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total, err := t.totalSupply(compound.CurrentTimestamp(t.clock))
	if err != nil {
		return nil, err
	}

	return &core.StableSupplyData{
		PrincipalSupply: new(uint256.Int).Set(t.supply),
		TotalSupply:     total,
		AvgRate:         new(uint256.Int).Set(t.avgRate),
		LastUpdate:      t.lastUpdate,
	}, nil
}

func (t *StableDebtToken) GetTotalSupplyAndAvgRate(ctx context.Context) (*uint256.Int, *uint256.Int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total, err := t.totalSupply(compound.CurrentTimestamp(t.clock))
	if err != nil {
		return nil, nil, err
	}

	return total, new(uint256.Int).Set(t.avgRate), nil
}

// weightedRate (rateA*amountA + rateB*amountB) / total, amounts in wad
func weightedRate(rateA, amountA, rateB, amountB, total *uint256.Int) (*uint256.Int, error) {
	a, err := weighted(rateA, amountA)
	if err != nil {
		return nil, err
	}

	b, err := weighted(rateB, amountB)
	if err != nil {
		return nil, err
	}

	sum, err := wadray.Add(a, b)
	if err != nil {
		return nil, err
	}

	return divByAmount(sum, total)
}

func weighted(rate, amount *uint256.Int) (*uint256.Int, error) {
	ray, err := wadray.WadToRay(amount)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(rate, ray)
}

func divByAmount(x, amount *uint256.Int) (*uint256.Int, error) {
	ray, err := wadray.WadToRay(amount)
	if err != nil {
		return nil, err
	}

	return wadray.RayDiv(x, ray)
}

// Mint records amount borrowed by user at rate. The user's rate becomes the
// average of the previous debt and the new one.
func (t *StableDebtToken) Mint(ctx context.Context, user string, amount, rate *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := compound.CurrentTimestamp(t.clock)

	balance, err := t.balanceOf(user, now)
	if err != nil {
		return err
	}

	prevSupply, err := t.totalSupply(now)
	if err != nil {
		return err
	}

	nextBalance, err := wadray.Add(balance, amount)
	if err != nil {
		return err
	}

	nextSupply, err := wadray.Add(prevSupply, amount)
	if err != nil {
		return err
	}

	userRate, err := weightedRate(t.rateOf(user), balance, rate, amount, nextBalance)
	if err != nil {
		return err
	}

	avgRate, err := weightedRate(t.avgRate, prevSupply, rate, amount, nextSupply)
	if err != nil {
		return err
	}

	t.positions[user] = stablePosition{
		principal:  nextBalance,
		rate:       userRate,
		lastUpdate: now,
	}
	t.supply = nextSupply
	t.avgRate = avgRate
	t.lastUpdate = now
	return nil
}

// Burn records amount repaid by user
func (t *StableDebtToken) Burn(ctx context.Context, user string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := compound.CurrentTimestamp(t.clock)

	balance, err := t.balanceOf(user, now)
	if err != nil {
		return err
	}

	if balance.Lt(amount) {
		return errors.Wrapf(core.ErrInsufficientBalance, "user %s owes %s, repay %s", user, balance, amount)
	}

	prevSupply, err := t.totalSupply(now)
	if err != nil {
		return err
	}

	nextSupply, nextAvg := wadray.Zero(), wadray.Zero()
	if prevSupply.Gt(amount) {
		// rounding can leave the last borrower's share above the average
		first, err := weighted(t.avgRate, prevSupply)
		if err != nil {
			return err
		}

		second, err := weighted(t.rateOf(user), amount)
		if err != nil {
			return err
		}

		if first.Gt(second) {
			nextSupply = new(uint256.Int).Sub(prevSupply, amount)
			if nextAvg, err = divByAmount(new(uint256.Int).Sub(first, second), nextSupply); err != nil {
				return err
			}
		}
	}

	if balance.Eq(amount) {
		delete(t.positions, user)
	} else {
		p := t.positions[user]
		p.principal = new(uint256.Int).Sub(balance, amount)
		p.lastUpdate = now
		t.positions[user] = p
	}

	t.supply = nextSupply
	t.avgRate = nextAvg
	t.lastUpdate = now
	return nil
}

func (t *StableDebtToken) rateOf(user string) *uint256.Int {
	if p, ok := t.positions[user]; ok {
		return p.rate
	}

	return wadray.Zero()
}
