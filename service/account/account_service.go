package account

import (
	"context"

	"lending/core"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// HealthFactorLiquidationThreshold positions below one wad can be liquidated
var HealthFactorLiquidationThreshold = wadray.Wad()

// maxDecimals largest power of ten that fits in 256 bits
const maxDecimals = 77

type accountService struct {
	reserves core.IReserveStore
	oracle   core.IPriceOracle
}

// New new account service
func New(
	reserves core.IReserveStore,
	oracle core.IPriceOracle,
) core.IAccountService {
	return &accountService{
		reserves: reserves,
		oracle:   oracle,
	}
}

// CalculateHealthFactorFromBalances collateral * threshold / debt in wad,
// MaxUint256 without debt
func CalculateHealthFactorFromBalances(totalCollateral, totalDebt, liquidationThreshold *uint256.Int) (*uint256.Int, error) {
	if totalDebt.IsZero() {
		return new(uint256.Int).Set(wadray.MaxUint256), nil
	}

	adjusted, err := wadray.PercentMul(totalCollateral, liquidationThreshold)
	if err != nil {
		return nil, err
	}

	return wadray.WadDiv(adjusted, totalDebt)
}

func (s *accountService) CalculateAvailableBorrows(totalCollateral, totalDebt, ltv *uint256.Int) (*uint256.Int, error) {
	available, err := wadray.PercentMul(totalCollateral, ltv)
	if err != nil {
		return nil, err
	}

	if !available.Gt(totalDebt) {
		return wadray.Zero(), nil
	}

	return available.Sub(available, totalDebt), nil
}

func emptyAccountData() *core.AccountData {
	return &core.AccountData{
		TotalCollateral:         wadray.Zero(),
		TotalDebt:               wadray.Zero(),
		AvgLTV:                  wadray.Zero(),
		AvgLiquidationThreshold: wadray.Zero(),
		HealthFactor:            new(uint256.Int).Set(wadray.MaxUint256),
		AvailableBorrows:        wadray.Zero(),
	}
}

// valueOf price * amount / 10^decimals
func valueOf(price, amount *uint256.Int, decimals uint64) (*uint256.Int, error) {
	if decimals > maxDecimals {
		return nil, errors.Wrapf(core.ErrInvalidConfigurationValue, "decimals %d", decimals)
	}

	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(decimals))
	v, err := wadray.Mul(price, amount)
	if err != nil {
		return nil, err
	}

	return v.Div(v, unit), nil
}

func (s *accountService) price(ctx context.Context, asset string) (*uint256.Int, error) {
	price, err := s.oracle.GetAssetPrice(ctx, asset)
	if err != nil {
		return nil, err
	}

	if price.IsZero() {
		return nil, errors.Wrapf(core.ErrInvalidPrice, "asset %s", asset)
	}

	return price, nil
}

func (s *accountService) CalculateUserAccountData(ctx context.Context, user string, config core.UserConfiguration) (*core.AccountData, error) {
	log := logger.FromContext(ctx).WithField("user", user)

	data := emptyAccountData()
	if config.IsEmpty() {
		return data, nil
	}

	count, err := s.reserves.Count(ctx)
	if err != nil {
		return nil, err
	}

	sumLTV, sumThreshold := wadray.Zero(), wadray.Zero()
	for i := 0; i < count && i < core.MaxReserves; i++ {
		id := uint16(i)
		if !config.IsUsingAsCollateralOrBorrowing(id) {
			continue
		}

		reserve, err := s.reserves.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		ltv, threshold, _, decimals, _ := reserve.Configuration.Params()

		price, err := s.price(ctx, reserve.Asset)
		if err != nil {
			log.WithError(err).Errorln("GetAssetPrice")
			return nil, err
		}

		if threshold != 0 && config.IsUsingAsCollateral(id) {
			balance, err := reserve.DepositToken.BalanceOf(ctx, user)
			if err != nil {
				return nil, err
			}

			value, err := valueOf(price, balance, decimals)
			if err != nil {
				return nil, err
			}

			if err := accumulate(data.TotalCollateral, value); err != nil {
				return nil, err
			}

			if err := accumulateWeighted(sumLTV, value, ltv); err != nil {
				return nil, err
			}

			if err := accumulateWeighted(sumThreshold, value, threshold); err != nil {
				return nil, err
			}
		}

		if config.IsBorrowing(id) {
			stable, err := reserve.StableDebtToken.BalanceOf(ctx, user)
			if err != nil {
				return nil, err
			}

			variable, err := reserve.VariableDebtToken.BalanceOf(ctx, user)
			if err != nil {
				return nil, err
			}

			debt, err := wadray.Add(stable, variable)
			if err != nil {
				return nil, err
			}

			value, err := valueOf(price, debt, decimals)
			if err != nil {
				return nil, err
			}

			if err := accumulate(data.TotalDebt, value); err != nil {
				return nil, err
			}
		}
	}

	if !data.TotalCollateral.IsZero() {
		data.AvgLTV.Div(sumLTV, data.TotalCollateral)
		data.AvgLiquidationThreshold.Div(sumThreshold, data.TotalCollateral)
	}

	if data.HealthFactor, err = CalculateHealthFactorFromBalances(data.TotalCollateral, data.TotalDebt, data.AvgLiquidationThreshold); err != nil {
		return nil, err
	}

	if data.AvailableBorrows, err = s.CalculateAvailableBorrows(data.TotalCollateral, data.TotalDebt, data.AvgLTV); err != nil {
		return nil, err
	}

	return data, nil
}

func accumulate(sum, value *uint256.Int) error {
	if _, overflow := sum.AddOverflow(sum, value); overflow {
		return wadray.ErrAdditionOverflow
	}

	return nil
}

func accumulateWeighted(sum, value *uint256.Int, weight uint64) error {
	v, err := wadray.Mul(value, uint256.NewInt(weight))
	if err != nil {
		return err
	}

	return accumulate(sum, v)
}

// BalanceDecreaseAllowed reports whether user can take amount of asset out
// of their collateral without the health factor dropping below one
func (s *accountService) BalanceDecreaseAllowed(ctx context.Context, asset, user string, amount *uint256.Int, config core.UserConfiguration) (bool, error) {
	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return false, err
	}

	if !config.IsBorrowingAny() || !config.IsUsingAsCollateral(reserve.ID) {
		return true, nil
	}

	_, threshold, _, decimals, _ := reserve.Configuration.Params()
	if threshold == 0 {
		return true, nil
	}

	data, err := s.CalculateUserAccountData(ctx, user, config)
	if err != nil {
		return false, err
	}

	if data.TotalDebt.IsZero() {
		return true, nil
	}

	price, err := s.price(ctx, asset)
	if err != nil {
		return false, err
	}

	decrease, err := valueOf(price, amount, decimals)
	if err != nil {
		return false, err
	}

	if data.TotalCollateral.Lt(decrease) {
		return false, errors.Wrapf(core.ErrCollateralUnderflow, "decrease %s, collateral %s", decrease, data.TotalCollateral)
	}

	collateralAfter := new(uint256.Int).Sub(data.TotalCollateral, decrease)
	if collateralAfter.IsZero() {
		return false, nil
	}

	weightedBefore, err := wadray.Mul(data.TotalCollateral, data.AvgLiquidationThreshold)
	if err != nil {
		return false, err
	}

	weightedDecrease, err := wadray.Mul(decrease, uint256.NewInt(threshold))
	if err != nil {
		return false, err
	}

	weightedAfter, err := wadray.Sub(weightedBefore, weightedDecrease)
	if err != nil {
		return false, errors.Wrap(core.ErrCollateralUnderflow, "liquidation threshold after decrease")
	}

	thresholdAfter := weightedAfter.Div(weightedAfter, collateralAfter)

	healthFactor, err := CalculateHealthFactorFromBalances(collateralAfter, data.TotalDebt, thresholdAfter)
	if err != nil {
		return false, err
	}

	return !healthFactor.Lt(HealthFactorLiquidationThreshold), nil
}
