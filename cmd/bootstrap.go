package cmd

import (
	"context"

	"lending/core"
	"lending/internal/compound"
	"lending/pkg/wadray"
	"lending/store/token"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// bootstrapReserves lists the configured reserves with in-memory tokens,
// seeds their initial liquidity to the treasury and sets the first rates.
// Seeded deposits are flagged as the treasury's collateral.
func bootstrapReserves(
	ctx context.Context,
	reserveSrv core.IReserveService,
	userConfigs core.IUserConfigurationStore,
	clk clock.Clock,
	rates core.ILendingRateOracle,
) error {
	c := mustConfig()

	for _, r := range c.Reserves {
		log := logger.FromContext(ctx).WithField("asset", r.Asset)

		strategy, err := provideInterestRateStrategy(r, rates)
		if err != nil {
			return errors.Wrapf(err, "reserve %s", r.Asset)
		}

		deposit := token.NewDepositToken(r.Asset, reserveSrv)
		reserve, err := reserveSrv.Init(ctx, r.Asset, core.ReserveInit{
			DepositToken:         deposit,
			StableDebtToken:      token.NewStableDebtToken(r.Asset, clk),
			VariableDebtToken:    token.NewVariableDebtToken(r.Asset, reserveSrv),
			InterestRateStrategy: strategy,
			Configuration:        r.Configuration(),
		})
		if err != nil {
			return errors.Wrapf(err, "init reserve %s", r.Asset)
		}

		liquidity, err := parseDecimal(r.InitialLiquidity, int32(r.Decimals))
		if err != nil {
			return errors.Wrapf(err, "initial liquidity of %s", r.Asset)
		}

		if !liquidity.IsZero() {
			if err := deposit.Mint(ctx, c.App.Treasury, liquidity, wadray.Ray()); err != nil {
				return err
			}

			if err := useAsCollateral(ctx, userConfigs, c.App.Treasury, reserve.ID); err != nil {
				return err
			}
		}

		if err := reserveSrv.UpdateInterestRates(ctx, r.Asset, wadray.Zero(), wadray.Zero()); err != nil {
			return errors.Wrapf(err, "update rates of %s", r.Asset)
		}

		log.Infoln("reserve listed", r.Symbol)
	}

	return nil
}

func useAsCollateral(ctx context.Context, userConfigs core.IUserConfigurationStore, user string, id uint16) error {
	config, err := userConfigs.Find(ctx, user)
	if err != nil {
		return err
	}

	if err := config.SetUsingAsCollateral(id, true); err != nil {
		return err
	}

	return userConfigs.Save(ctx, user, config)
}

func provideInterestRateStrategy(r core.ReserveConfig, rates core.ILendingRateOracle) (core.IInterestRateStrategy, error) {
	var params compound.InterestRateParams

	for _, f := range []struct {
		name   string
		value  string
		target **uint256.Int
	}{
		{"optimal_utilization", r.OptimalUtilization, &params.OptimalUtilizationRate},
		{"base_variable_borrow_rate", r.BaseVariableBorrowRate, &params.BaseVariableBorrowRate},
		{"variable_rate_slope1", r.VariableRateSlope1, &params.VariableRateSlope1},
		{"variable_rate_slope2", r.VariableRateSlope2, &params.VariableRateSlope2},
		{"stable_rate_slope1", r.StableRateSlope1, &params.StableRateSlope1},
		{"stable_rate_slope2", r.StableRateSlope2, &params.StableRateSlope2},
	} {
		v, err := parseDecimal(f.value, wadray.RayDecimals)
		if err != nil {
			return nil, errors.Wrap(err, f.name)
		}

		*f.target = v
	}

	strategy, err := compound.NewInterestRateStrategy(params, rates)
	if err != nil {
		return nil, err
	}

	return strategy, nil
}
