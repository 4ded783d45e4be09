package reserve

import (
	"context"

	"lending/core"
	"lending/internal/compound"
	"lending/pkg/wadray"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

type service struct {
	reserves core.IReserveStore
	clock    clock.Clock
	events   core.IEventSink
	treasury string
}

// New new reserve accrual service
func New(
	reserves core.IReserveStore,
	clk clock.Clock,
	events core.IEventSink,
	treasury string,
) core.IReserveService {
	return &service{
		reserves: reserves,
		clock:    clk,
		events:   events,
		treasury: treasury,
	}
}

func (s *service) now() uint64 {
	return compound.CurrentTimestamp(s.clock)
}

func (s *service) Find(ctx context.Context, asset string) (*core.Reserve, error) {
	return s.reserves.Find(ctx, asset)
}

func (s *service) All(ctx context.Context) ([]*core.Reserve, error) {
	return s.reserves.All(ctx)
}

func (s *service) Init(ctx context.Context, asset string, init core.ReserveInit) (*core.Reserve, error) {
	log := logger.FromContext(ctx).WithField("asset", asset)

	if _, err := s.reserves.Find(ctx, asset); err == nil {
		return nil, errors.Wrapf(core.ErrReserveAlreadyInitialized, "asset %s", asset)
	} else if !errors.Is(err, core.ErrReserveNotFound) {
		return nil, err
	}

	switch {
	case init.DepositToken == nil:
		return nil, errors.Wrap(core.ErrMissingCollaborator, "deposit token")
	case init.StableDebtToken == nil:
		return nil, errors.Wrap(core.ErrMissingCollaborator, "stable debt token")
	case init.VariableDebtToken == nil:
		return nil, errors.Wrap(core.ErrMissingCollaborator, "variable debt token")
	case init.InterestRateStrategy == nil:
		return nil, errors.Wrap(core.ErrMissingCollaborator, "interest rate strategy")
	}

	if err := init.Configuration.Validate(); err != nil {
		return nil, err
	}

	if init.Configuration.ReserveFactor > wadray.PercentageFactor.Uint64() {
		return nil, errors.Wrapf(core.ErrInvalidReserveFactor, "reserve factor %d", init.Configuration.ReserveFactor)
	}

	reserve := &core.Reserve{
		Asset:                     asset,
		Configuration:             init.Configuration,
		LiquidityIndex:            wadray.Ray(),
		VariableBorrowIndex:       wadray.Ray(),
		CurrentLiquidityRate:      wadray.Zero(),
		CurrentVariableBorrowRate: wadray.Zero(),
		CurrentStableBorrowRate:   wadray.Zero(),
		DepositToken:              init.DepositToken,
		StableDebtToken:           init.StableDebtToken,
		VariableDebtToken:         init.VariableDebtToken,
		InterestRateStrategy:      init.InterestRateStrategy,
	}

	if err := s.reserves.Add(ctx, reserve); err != nil {
		log.WithError(err).Errorln("reserves.Add")
		return nil, err
	}

	log.Infof("reserve %d initialized", reserve.ID)
	return reserve.Clone(), nil
}

func (s *service) UpdateState(ctx context.Context, asset string) error {
	log := logger.FromContext(ctx).WithField("asset", asset)

	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return err
	}

	now := s.now()
	if reserve.LastUpdateTimestamp == now {
		return nil
	}

	scaledVariableDebt, err := reserve.VariableDebtToken.ScaledTotalSupply(ctx)
	if err != nil {
		log.WithError(err).Errorln("VariableDebtToken.ScaledTotalSupply")
		return err
	}

	prev := reserve.Clone()
	if err := updateIndexes(reserve, scaledVariableDebt, now); err != nil {
		log.WithError(err).Errorln("updateIndexes")
		return err
	}

	revert, err := s.mintToTreasury(ctx, reserve, prev, scaledVariableDebt)
	if err != nil {
		log.WithError(err).Errorln("mintToTreasury")
		return err
	}

	if err := s.reserves.Update(ctx, reserve); err != nil {
		log.WithError(err).Errorln("reserves.Update")
		if revert != nil {
			if e := revert(ctx); e != nil {
				log.WithError(e).Errorln("revert treasury skim")
			}
		}

		return err
	}

	return nil
}

// updateIndexes accrues both indices up to now. The variable borrow index
// only moves while there is variable debt.
func updateIndexes(reserve *core.Reserve, scaledVariableDebt *uint256.Int, now uint64) error {
	if !reserve.CurrentLiquidityRate.IsZero() {
		factor, err := compound.CalculateLinearInterest(reserve.CurrentLiquidityRate, reserve.LastUpdateTimestamp, now)
		if err != nil {
			return err
		}

		index, err := wadray.RayMul(factor, reserve.LiquidityIndex)
		if err != nil {
			return err
		}

		if !wadray.FitsUint128(index) {
			return core.ErrLiquidityIndexOverflow
		}

		reserve.LiquidityIndex = index

		if !scaledVariableDebt.IsZero() {
			factor, err := compound.CalculateCompoundedInterest(reserve.CurrentVariableBorrowRate, reserve.LastUpdateTimestamp, now)
			if err != nil {
				return err
			}

			index, err := wadray.RayMul(factor, reserve.VariableBorrowIndex)
			if err != nil {
				return err
			}

			if !wadray.FitsUint128(index) {
				return core.ErrVariableBorrowIndexOverflow
			}

			reserve.VariableBorrowIndex = index
		}
	} else if reserve.LastUpdateTimestamp > now {
		return errors.Wrapf(core.ErrTimestampInPast, "now %d, last update %d", now, reserve.LastUpdateTimestamp)
	}

	reserve.LastUpdateTimestamp = now
	return nil
}

func (s *service) UpdateInterestRates(ctx context.Context, asset string, liquidityAdded, liquidityTaken *uint256.Int) error {
	log := logger.FromContext(ctx).WithField("asset", asset)

	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return err
	}

	totalStableDebt, avgStableRate, err := reserve.StableDebtToken.GetTotalSupplyAndAvgRate(ctx)
	if err != nil {
		log.WithError(err).Errorln("StableDebtToken.GetTotalSupplyAndAvgRate")
		return err
	}

	scaledVariableDebt, err := reserve.VariableDebtToken.ScaledTotalSupply(ctx)
	if err != nil {
		log.WithError(err).Errorln("VariableDebtToken.ScaledTotalSupply")
		return err
	}

	totalVariableDebt, err := wadray.RayMul(scaledVariableDebt, reserve.VariableBorrowIndex)
	if err != nil {
		return err
	}

	available, err := availableLiquidity(ctx, reserve.DepositToken, liquidityAdded, liquidityTaken)
	if err != nil {
		return err
	}

	rates, err := reserve.InterestRateStrategy.CalculateInterestRates(ctx, core.RateParams{
		Asset:              asset,
		AvailableLiquidity: available,
		TotalStableDebt:    totalStableDebt,
		TotalVariableDebt:  totalVariableDebt,
		AvgStableRate:      avgStableRate,
		ReserveFactor:      reserve.Configuration.ReserveFactor,
	})
	if err != nil {
		log.WithError(err).Errorln("CalculateInterestRates")
		return err
	}

	switch {
	case !wadray.FitsUint128(rates.Liquidity):
		return core.ErrLiquidityRateOverflow
	case !wadray.FitsUint128(rates.Stable):
		return core.ErrStableBorrowRateOverflow
	case !wadray.FitsUint128(rates.Variable):
		return core.ErrVariableBorrowRateOverflow
	}

	reserve.CurrentLiquidityRate = rates.Liquidity
	reserve.CurrentStableBorrowRate = rates.Stable
	reserve.CurrentVariableBorrowRate = rates.Variable

	if err := s.reserves.Update(ctx, reserve); err != nil {
		log.WithError(err).Errorln("reserves.Update")
		return err
	}

	s.events.ReserveDataUpdated(ctx, &core.ReserveDataUpdated{
		Asset:               asset,
		LiquidityRate:       rates.Liquidity,
		StableBorrowRate:    rates.Stable,
		VariableBorrowRate:  rates.Variable,
		LiquidityIndex:      reserve.LiquidityIndex,
		VariableBorrowIndex: reserve.VariableBorrowIndex,
	})

	return nil
}

func availableLiquidity(ctx context.Context, token core.IDepositToken, added, taken *uint256.Int) (*uint256.Int, error) {
	balance, err := token.UnderlyingBalance(ctx)
	if err != nil {
		return nil, err
	}

	if added != nil {
		if balance, err = wadray.Add(balance, added); err != nil {
			return nil, err
		}
	}

	if taken != nil {
		if balance.Lt(taken) {
			return nil, errors.Wrapf(core.ErrInsufficientLiquidity, "take %s, available %s", taken, balance)
		}

		balance = new(uint256.Int).Sub(balance, taken)
	}

	return balance, nil
}

func (s *service) CumulateToLiquidityIndex(ctx context.Context, asset string, totalLiquidity, amount *uint256.Int) error {
	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return err
	}

	if totalLiquidity.IsZero() {
		return errors.Wrap(wadray.ErrDivisionByZero, "total liquidity")
	}

	amountRay, err := wadray.WadToRay(amount)
	if err != nil {
		return err
	}

	totalRay, err := wadray.WadToRay(totalLiquidity)
	if err != nil {
		return err
	}

	ratio, err := wadray.RayDiv(amountRay, totalRay)
	if err != nil {
		return err
	}

	if ratio, err = wadray.Add(ratio, wadray.RAY); err != nil {
		return err
	}

	index, err := wadray.RayMul(ratio, reserve.LiquidityIndex)
	if err != nil {
		return err
	}

	if !wadray.FitsUint128(index) {
		return core.ErrLiquidityIndexOverflow
	}

	reserve.LiquidityIndex = index
	return s.reserves.Update(ctx, reserve)
}

// NormalizedIncome liquidity index projected to now
func (s *service) NormalizedIncome(ctx context.Context, asset string) (*uint256.Int, error) {
	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if reserve.LastUpdateTimestamp == now {
		return reserve.LiquidityIndex, nil
	}

	factor, err := compound.CalculateLinearInterest(reserve.CurrentLiquidityRate, reserve.LastUpdateTimestamp, now)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(factor, reserve.LiquidityIndex)
}

// NormalizedDebt variable borrow index projected to now
func (s *service) NormalizedDebt(ctx context.Context, asset string) (*uint256.Int, error) {
	reserve, err := s.reserves.Find(ctx, asset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if reserve.LastUpdateTimestamp == now {
		return reserve.VariableBorrowIndex, nil
	}

	factor, err := compound.CalculateCompoundedInterest(reserve.CurrentVariableBorrowRate, reserve.LastUpdateTimestamp, now)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(factor, reserve.VariableBorrowIndex)
}
