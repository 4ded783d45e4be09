package compound

import (
	"context"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// InterestRateParams two-slope curve parameters, all ray
type InterestRateParams struct {
	// OptimalUtilizationRate kink of the curve, in (0, 1)
	OptimalUtilizationRate *uint256.Int
	BaseVariableBorrowRate *uint256.Int
	// VariableRateSlope1 variable rate increase from 0 to optimal utilization
	VariableRateSlope1 *uint256.Int
	// VariableRateSlope2 variable rate increase from optimal to full utilization
	VariableRateSlope2 *uint256.Int
	StableRateSlope1   *uint256.Int
	StableRateSlope2   *uint256.Int
}

// InterestRateStrategy two-slope interest rate model.
//
// Below the optimal utilization U* the rates grow along slope1, above it
// they grow along slope2 scaled by the excess utilization
// (U - U*) / (1 - U*). The stable rate starts from the market borrow rate
// reported by the lending rate oracle.
type InterestRateStrategy struct {
	params            InterestRateParams
	excessUtilization *uint256.Int
	lendingRateOracle core.ILendingRateOracle
}

// NewInterestRateStrategy validate params and build the strategy
func NewInterestRateStrategy(params InterestRateParams, oracle core.ILendingRateOracle) (*InterestRateStrategy, error) {
	optimal := params.OptimalUtilizationRate
	if optimal == nil || optimal.IsZero() || !optimal.Lt(wadray.RAY) {
		return nil, core.ErrInvalidOptimalUtilization
	}

	p := InterestRateParams{
		OptimalUtilizationRate: new(uint256.Int).Set(optimal),
		BaseVariableBorrowRate: orZero(params.BaseVariableBorrowRate),
		VariableRateSlope1:     orZero(params.VariableRateSlope1),
		VariableRateSlope2:     orZero(params.VariableRateSlope2),
		StableRateSlope1:       orZero(params.StableRateSlope1),
		StableRateSlope2:       orZero(params.StableRateSlope2),
	}

	return &InterestRateStrategy{
		params:            p,
		excessUtilization: new(uint256.Int).Sub(wadray.RAY, optimal),
		lendingRateOracle: oracle,
	}, nil
}

func orZero(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return new(uint256.Int).Set(x)
}

// Params copy of the curve parameters
func (s *InterestRateStrategy) Params() InterestRateParams {
	return InterestRateParams{
		OptimalUtilizationRate: orZero(s.params.OptimalUtilizationRate),
		BaseVariableBorrowRate: orZero(s.params.BaseVariableBorrowRate),
		VariableRateSlope1:     orZero(s.params.VariableRateSlope1),
		VariableRateSlope2:     orZero(s.params.VariableRateSlope2),
		StableRateSlope1:       orZero(s.params.StableRateSlope1),
		StableRateSlope2:       orZero(s.params.StableRateSlope2),
	}
}

// MaxVariableBorrowRate rate at full utilization
func (s *InterestRateStrategy) MaxVariableBorrowRate() *uint256.Int {
	r := new(uint256.Int).Add(s.params.BaseVariableBorrowRate, s.params.VariableRateSlope1)
	return r.Add(r, s.params.VariableRateSlope2)
}

// UtilizationRate totalDebt / (availableLiquidity + totalDebt), 0 without debt
func UtilizationRate(availableLiquidity, totalDebt *uint256.Int) (*uint256.Int, error) {
	if totalDebt.IsZero() {
		return wadray.Zero(), nil
	}

	total, err := wadray.Add(availableLiquidity, totalDebt)
	if err != nil {
		return nil, err
	}

	return wadray.RayDiv(totalDebt, total)
}

// CalculateInterestRates liquidity, stable and variable rates of a reserve
func (s *InterestRateStrategy) CalculateInterestRates(ctx context.Context, p core.RateParams) (*core.Rates, error) {
	if p.ReserveFactor > 1e4 {
		return nil, errors.Wrapf(core.ErrInvalidReserveFactor, "reserve factor %d", p.ReserveFactor)
	}

	totalDebt, err := wadray.Add(p.TotalStableDebt, p.TotalVariableDebt)
	if err != nil {
		return nil, err
	}

	utilization, err := UtilizationRate(p.AvailableLiquidity, totalDebt)
	if err != nil {
		return nil, err
	}

	marketRate, err := s.lendingRateOracle.GetMarketBorrowRate(ctx, p.Asset)
	if err != nil {
		return nil, errors.Wrapf(err, "market borrow rate of %s", p.Asset)
	}

	var stableRate, variableRate *uint256.Int
	if utilization.Gt(s.params.OptimalUtilizationRate) {
		stableRate, variableRate, err = s.excessRates(marketRate, utilization)
	} else {
		stableRate, variableRate, err = s.normalRates(marketRate, utilization)
	}
	if err != nil {
		return nil, err
	}

	overall, err := overallBorrowRate(p.TotalStableDebt, p.TotalVariableDebt, variableRate, p.AvgStableRate)
	if err != nil {
		return nil, err
	}

	liquidityRate, err := wadray.RayMul(overall, utilization)
	if err != nil {
		return nil, err
	}

	liquidityRate, err = wadray.PercentMul(liquidityRate, uint256.NewInt(1e4-p.ReserveFactor))
	if err != nil {
		return nil, err
	}

	return &core.Rates{
		Liquidity:     liquidityRate,
		Stable:        stableRate,
		Variable:      variableRate,
		Utilization:   utilization,
		OverallBorrow: overall,
	}, nil
}

// normalRates rates for U <= U*. The slope is scaled by U/U*, which is
// exactly one ray at the kink so both branches meet there.
func (s *InterestRateStrategy) normalRates(marketRate, utilization *uint256.Int) (stable, variable *uint256.Int, err error) {
	ratio, err := wadray.RayDiv(utilization, s.params.OptimalUtilizationRate)
	if err != nil {
		return nil, nil, err
	}

	stable, err = addRayMul(marketRate, s.params.StableRateSlope1, ratio)
	if err != nil {
		return nil, nil, err
	}

	variable, err = addRayMul(s.params.BaseVariableBorrowRate, s.params.VariableRateSlope1, ratio)
	if err != nil {
		return nil, nil, err
	}

	return stable, variable, nil
}

// excessRates rates for U > U*
func (s *InterestRateStrategy) excessRates(marketRate, utilization *uint256.Int) (stable, variable *uint256.Int, err error) {
	excess := new(uint256.Int).Sub(utilization, s.params.OptimalUtilizationRate)
	ratio, err := wadray.RayDiv(excess, s.excessUtilization)
	if err != nil {
		return nil, nil, err
	}

	stableBase, err := wadray.Add(marketRate, s.params.StableRateSlope1)
	if err != nil {
		return nil, nil, err
	}

	stable, err = addRayMul(stableBase, s.params.StableRateSlope2, ratio)
	if err != nil {
		return nil, nil, err
	}

	variableBase, err := wadray.Add(s.params.BaseVariableBorrowRate, s.params.VariableRateSlope1)
	if err != nil {
		return nil, nil, err
	}

	variable, err = addRayMul(variableBase, s.params.VariableRateSlope2, ratio)
	if err != nil {
		return nil, nil, err
	}

	return stable, variable, nil
}

// addRayMul base + slope*ratio
func addRayMul(base, slope, ratio *uint256.Int) (*uint256.Int, error) {
	v, err := wadray.RayMul(slope, ratio)
	if err != nil {
		return nil, err
	}

	return wadray.Add(base, v)
}

// overallBorrowRate debt weighted average of the variable rate and the
// average stable rate
func overallBorrowRate(totalStableDebt, totalVariableDebt, variableRate, avgStableRate *uint256.Int) (*uint256.Int, error) {
	totalDebt, err := wadray.Add(totalStableDebt, totalVariableDebt)
	if err != nil {
		return nil, err
	}

	if totalDebt.IsZero() {
		return wadray.Zero(), nil
	}

	weightedVariable, err := weighted(totalVariableDebt, variableRate)
	if err != nil {
		return nil, err
	}

	weightedStable, err := weighted(totalStableDebt, avgStableRate)
	if err != nil {
		return nil, err
	}

	sum, err := wadray.Add(weightedVariable, weightedStable)
	if err != nil {
		return nil, err
	}

	totalDebtRay, err := wadray.WadToRay(totalDebt)
	if err != nil {
		return nil, err
	}

	return wadray.RayDiv(sum, totalDebtRay)
}

func weighted(debt, rate *uint256.Int) (*uint256.Int, error) {
	debtRay, err := wadray.WadToRay(debt)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(debtRay, orZero(rate))
}
