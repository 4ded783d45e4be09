package account

import (
	"context"
	"testing"
	"time"

	"lending/core"
	"lending/internal/compound"
	"lending/pkg/wadray"
	"lending/service/reserve"
	reservestore "lending/store/reserve"
	"lending/store/token"

	"github.com/facebookgo/clock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticPrices map[string]*uint256.Int

func (p staticPrices) GetAssetPrice(ctx context.Context, asset string) (*uint256.Int, error) {
	if price, ok := p[asset]; ok {
		return price, nil
	}

	return wadray.Zero(), nil
}

type noopSink struct{}

func (noopSink) ReserveDataUpdated(ctx context.Context, event *core.ReserveDataUpdated) {}

type zeroRateOracle struct{}

func (zeroRateOracle) GetMarketBorrowRate(ctx context.Context, asset string) (*uint256.Int, error) {
	return wadray.Zero(), nil
}

// staleDebtToken reports scaled balances without applying the borrow index
type staleDebtToken struct {
	*token.VariableDebtToken
}

func (t staleDebtToken) BalanceOf(ctx context.Context, user string) (*uint256.Int, error) {
	return t.ScaledBalanceOf(ctx, user)
}

const (
	eth = iota
	dai
)

type fixture struct {
	ctx      context.Context
	clock    *clock.Mock
	store    core.IReserveStore
	reserves core.IReserveService
	prices   staticPrices
	accounts core.IAccountService

	ethDeposit  *token.DepositToken
	daiVariable *token.VariableDebtToken
}

func newFixture(t *testing.T, staleDebt bool) *fixture {
	f := &fixture{
		ctx:   context.Background(),
		clock: clock.NewMock(),
		store: reservestore.New(),
		prices: staticPrices{
			"eth": wadray.MustWad("2000"),
			"dai": wadray.MustWad("1"),
		},
	}

	f.reserves = reserve.New(f.store, f.clock, noopSink{}, "treasury")
	f.accounts = New(f.store, f.prices)

	strategy, err := compound.NewInterestRateStrategy(compound.InterestRateParams{
		OptimalUtilizationRate: wadray.MustRay("0.8"),
	}, zeroRateOracle{})
	require.Nil(t, err)

	f.ethDeposit = token.NewDepositToken("eth", f.reserves)
	_, err = f.reserves.Init(f.ctx, "eth", core.ReserveInit{
		DepositToken:         f.ethDeposit,
		StableDebtToken:      token.NewStableDebtToken("eth", f.clock),
		VariableDebtToken:    token.NewVariableDebtToken("eth", f.reserves),
		InterestRateStrategy: strategy,
		Configuration: core.ReserveConfiguration{
			LTV:                  8000,
			LiquidationThreshold: 8250,
			LiquidationBonus:     10500,
			Decimals:             18,
			Active:               true,
		},
	})
	require.Nil(t, err)

	f.daiVariable = token.NewVariableDebtToken("dai", f.reserves)
	var variable core.IVariableDebtToken = f.daiVariable
	if staleDebt {
		variable = staleDebtToken{f.daiVariable}
	}

	_, err = f.reserves.Init(f.ctx, "dai", core.ReserveInit{
		DepositToken:         token.NewDepositToken("dai", f.reserves),
		StableDebtToken:      token.NewStableDebtToken("dai", f.clock),
		VariableDebtToken:    variable,
		InterestRateStrategy: strategy,
		Configuration: core.ReserveConfiguration{
			LTV:                  7500,
			LiquidationThreshold: 8000,
			Decimals:             6,
			Active:               true,
			BorrowingEnabled:     true,
		},
	})
	require.Nil(t, err)

	// alice supplies 10 eth and borrows 5000 dai
	require.Nil(t, f.ethDeposit.Mint(f.ctx, "alice", wadray.MustWad("10"), wadray.Ray()))
	require.Nil(t, f.daiVariable.Mint(f.ctx, "alice", uint256.NewInt(5000_000000), wadray.Ray()))
	return f
}

func aliceConfig(t *testing.T) core.UserConfiguration {
	var c core.UserConfiguration
	require.Nil(t, c.SetUsingAsCollateral(eth, true))
	require.Nil(t, c.SetBorrowing(dai, true))
	return c
}

func TestEmptyAccount(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.accounts.CalculateUserAccountData(f.ctx, "bob", core.UserConfiguration{})
	require.Nil(t, err)
	assert.True(t, data.TotalCollateral.IsZero())
	assert.True(t, data.TotalDebt.IsZero())
	assert.True(t, data.AvgLTV.IsZero())
	assert.Equal(t, wadray.MaxUint256, data.HealthFactor)
}

func TestCalculateUserAccountData(t *testing.T) {
	f := newFixture(t, false)

	data, err := f.accounts.CalculateUserAccountData(f.ctx, "alice", aliceConfig(t))
	require.Nil(t, err)

	assert.Equal(t, wadray.MustWad("20000"), data.TotalCollateral)
	assert.Equal(t, wadray.MustWad("5000"), data.TotalDebt)
	assert.Equal(t, uint256.NewInt(8000), data.AvgLTV)
	assert.Equal(t, uint256.NewInt(8250), data.AvgLiquidationThreshold)
	assert.Equal(t, wadray.MustWad("3.3"), data.HealthFactor)
	assert.Equal(t, wadray.MustWad("11000"), data.AvailableBorrows)
}

func TestCollateralOnlyAccount(t *testing.T) {
	f := newFixture(t, false)

	var c core.UserConfiguration
	require.Nil(t, c.SetUsingAsCollateral(eth, true))

	data, err := f.accounts.CalculateUserAccountData(f.ctx, "alice", c)
	require.Nil(t, err)
	assert.Equal(t, wadray.MustWad("20000"), data.TotalCollateral)
	assert.Equal(t, wadray.MaxUint256, data.HealthFactor)
	assert.Equal(t, wadray.MustWad("16000"), data.AvailableBorrows)
}

func TestDebtWithoutCollateral(t *testing.T) {
	f := newFixture(t, false)

	var c core.UserConfiguration
	require.Nil(t, c.SetBorrowing(dai, true))

	data, err := f.accounts.CalculateUserAccountData(f.ctx, "alice", c)
	require.Nil(t, err)
	assert.True(t, data.TotalCollateral.IsZero())
	assert.True(t, data.AvgLiquidationThreshold.IsZero())
	assert.True(t, data.HealthFactor.IsZero())
	assert.True(t, data.AvailableBorrows.IsZero())
}

func TestMissingPrice(t *testing.T) {
	f := newFixture(t, false)
	delete(f.prices, "eth")

	_, err := f.accounts.CalculateUserAccountData(f.ctx, "alice", aliceConfig(t))
	assert.ErrorIs(t, err, core.ErrInvalidPrice)
}

func TestCalculateAvailableBorrows(t *testing.T) {
	s := New(nil, nil)

	for _, c := range []struct {
		collateral, debt, ltv, expect uint64
	}{
		{100, 10, 5000, 40},
		{100, 50, 5000, 0},
		{100, 80, 5000, 0},
		{0, 0, 5000, 0},
		{100, 0, 0, 0},
	} {
		avail, err := s.CalculateAvailableBorrows(
			wadray.MustWad(uint256.NewInt(c.collateral).Dec()),
			wadray.MustWad(uint256.NewInt(c.debt).Dec()),
			uint256.NewInt(c.ltv),
		)
		require.Nil(t, err)
		assert.Equal(t, wadray.MustWad(uint256.NewInt(c.expect).Dec()), avail)
	}
}

func TestBalanceDecreaseAllowed(t *testing.T) {
	f := newFixture(t, false)
	config := aliceConfig(t)

	for _, c := range []struct {
		amount string
		expect bool
	}{
		{"2", true},
		// 6000 collateral * 0.825 / 5000 debt = 0.99
		{"7", false},
		{"10", false},
	} {
		ok, err := f.accounts.BalanceDecreaseAllowed(f.ctx, "eth", "alice", wadray.MustWad(c.amount), config)
		require.Nil(t, err)
		assert.Equal(t, c.expect, ok, "withdraw %s eth", c.amount)
	}

	_, err := f.accounts.BalanceDecreaseAllowed(f.ctx, "eth", "alice", wadray.MustWad("11"), config)
	assert.ErrorIs(t, err, core.ErrCollateralUnderflow)

	_, err = f.accounts.BalanceDecreaseAllowed(f.ctx, "wbtc", "alice", wadray.MustWad("1"), config)
	assert.ErrorIs(t, err, core.ErrReserveNotFound)
}

func TestBalanceDecreaseWithoutBorrowing(t *testing.T) {
	f := newFixture(t, false)

	var c core.UserConfiguration
	require.Nil(t, c.SetUsingAsCollateral(eth, true))

	// no borrow, any amount can leave
	ok, err := f.accounts.BalanceDecreaseAllowed(f.ctx, "eth", "alice", wadray.MustWad("1000"), c)
	require.Nil(t, err)
	assert.True(t, ok)

	// dai is not used as collateral
	ok, err = f.accounts.BalanceDecreaseAllowed(f.ctx, "dai", "alice", wadray.MustWad("1000"), aliceConfig(t))
	require.Nil(t, err)
	assert.True(t, ok)
}

func TestHealthFactorFromBalances(t *testing.T) {
	hf, err := CalculateHealthFactorFromBalances(wadray.MustWad("100"), wadray.Zero(), uint256.NewInt(8000))
	require.Nil(t, err)
	assert.Equal(t, wadray.MaxUint256, hf)

	hf, err = CalculateHealthFactorFromBalances(wadray.MustWad("100"), wadray.MustWad("80"), uint256.NewInt(8000))
	require.Nil(t, err)
	assert.Equal(t, wadray.Wad(), hf)
}

func TestStaleDebtTokenUnderReportsDebt(t *testing.T) {
	fresh := newFixture(t, false)
	stale := newFixture(t, true)

	for _, f := range []*fixture{fresh, stale} {
		r, err := f.store.Find(f.ctx, "dai")
		require.Nil(t, err)
		r.CurrentVariableBorrowRate = wadray.MustRay("0.1")
		require.Nil(t, f.store.Update(f.ctx, r))
		f.clock.Add(365 * 24 * time.Hour)
	}

	freshData, err := fresh.accounts.CalculateUserAccountData(fresh.ctx, "alice", aliceConfig(t))
	require.Nil(t, err)
	staleData, err := stale.accounts.CalculateUserAccountData(stale.ctx, "alice", aliceConfig(t))
	require.Nil(t, err)

	// the stale token still reports the borrowed principal
	assert.Equal(t, wadray.MustWad("5000"), staleData.TotalDebt)
	assert.True(t, freshData.TotalDebt.Gt(wadray.MustWad("5500")))
	assert.True(t, staleData.HealthFactor.Gt(freshData.HealthFactor))
}
