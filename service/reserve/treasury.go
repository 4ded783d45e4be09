package reserve

import (
	"context"

	"lending/core"
	"lending/internal/compound"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

type revertFunc func(ctx context.Context) error

// mintToTreasury credits the treasury with the reserve factor share of the
// debt accrued between prev and reserve. A negative accrual, which rounding
// and stable supply bookkeeping can produce, is taken back from the treasury,
// at most what the treasury holds. The returned func undoes exactly the
// movement made.
func (s *service) mintToTreasury(ctx context.Context, reserve, prev *core.Reserve, scaledVariableDebt *uint256.Int) (revertFunc, error) {
	reserveFactor := reserve.Configuration.ReserveFactor
	if reserveFactor == 0 {
		return nil, nil
	}

	data, err := reserve.StableDebtToken.GetSupplyData(ctx)
	if err != nil {
		return nil, err
	}

	prevVariableDebt, err := wadray.RayMul(scaledVariableDebt, prev.VariableBorrowIndex)
	if err != nil {
		return nil, err
	}

	currentVariableDebt, err := wadray.RayMul(scaledVariableDebt, reserve.VariableBorrowIndex)
	if err != nil {
		return nil, err
	}

	prevStableDebt, err := stableDebtAt(data, prev.LastUpdateTimestamp)
	if err != nil {
		return nil, err
	}

	current, err := wadray.Add(currentVariableDebt, data.TotalSupply)
	if err != nil {
		return nil, err
	}

	previous, err := wadray.Add(prevVariableDebt, prevStableDebt)
	if err != nil {
		return nil, err
	}

	mint := !current.Lt(previous)
	accrued := new(uint256.Int)
	if mint {
		accrued.Sub(current, previous)
	} else {
		accrued.Sub(previous, current)
	}

	amount, err := wadray.PercentMul(accrued, uint256.NewInt(reserveFactor))
	if err != nil {
		return nil, err
	}

	if amount.IsZero() {
		return nil, nil
	}

	index := reserve.LiquidityIndex
	token := reserve.DepositToken
	log := logger.FromContext(ctx).WithField("asset", reserve.Asset)

	if mint {
		if err := token.MintToTreasury(ctx, s.treasury, amount, index); err != nil {
			return nil, err
		}

		log.Debugf("mint %s to treasury", amount)
		return func(ctx context.Context) error {
			return token.BurnFromTreasury(ctx, s.treasury, amount, index)
		}, nil
	}

	scaled, err := token.ScaledBalanceOf(ctx, s.treasury)
	if err != nil {
		return nil, err
	}

	held, err := wadray.RayMul(scaled, index)
	if err != nil {
		return nil, err
	}

	if held.Lt(amount) {
		log.Warnf("burn %s from treasury capped at %s", amount, held)
		amount = held
	}

	if amount.IsZero() {
		return nil, nil
	}

	if err := token.BurnFromTreasury(ctx, s.treasury, amount, index); err != nil {
		return nil, err
	}

	log.Debugf("burn %s from treasury", amount)
	return func(ctx context.Context) error {
		return token.MintToTreasury(ctx, s.treasury, amount, index)
	}, nil
}

// stableDebtAt stable supply as it was at timestamp. Principal recorded
// after timestamp has not accrued anything yet.
func stableDebtAt(data *core.StableSupplyData, timestamp uint64) (*uint256.Int, error) {
	if data.LastUpdate >= timestamp {
		return new(uint256.Int).Set(data.PrincipalSupply), nil
	}

	factor, err := compound.CalculateCompoundedInterest(data.AvgRate, data.LastUpdate, timestamp)
	if err != nil {
		return nil, err
	}

	return wadray.RayMul(data.PrincipalSupply, factor)
}
