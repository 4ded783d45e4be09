package cmd

import (
	"lending/core"
	"lending/handler/views"
	"lending/pkg/number"
	"lending/pkg/wadray"
	"lending/service/oracle"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "preview the rates of a strategy for given liquidity and debt",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		r := core.ReserveConfig{Asset: "preview"}
		r.OptimalUtilization, _ = flags.GetString("optimal")
		r.BaseVariableBorrowRate, _ = flags.GetString("base")
		r.VariableRateSlope1, _ = flags.GetString("variable-slope1")
		r.VariableRateSlope2, _ = flags.GetString("variable-slope2")
		r.StableRateSlope1, _ = flags.GetString("stable-slope1")
		r.StableRateSlope2, _ = flags.GetString("stable-slope2")
		r.ReserveFactor, _ = flags.GetUint64("reserve-factor")

		marketRate, err := decimalFlag(cmd, "market-rate", wadray.RayDecimals)
		if err != nil {
			return err
		}

		rates := oracle.NewLendingRateOracle()
		rates.SetMarketBorrowRate(r.Asset, marketRate)

		strategy, err := provideInterestRateStrategy(r, rates)
		if err != nil {
			return err
		}

		input := core.RateParams{
			Asset:         r.Asset,
			ReserveFactor: r.ReserveFactor,
		}

		if input.AvailableLiquidity, err = decimalFlag(cmd, "available", wadray.WadDecimals); err != nil {
			return err
		}

		if input.TotalStableDebt, err = decimalFlag(cmd, "stable-debt", wadray.WadDecimals); err != nil {
			return err
		}

		if input.TotalVariableDebt, err = decimalFlag(cmd, "variable-debt", wadray.WadDecimals); err != nil {
			return err
		}

		if input.AvgStableRate, err = decimalFlag(cmd, "avg-stable-rate", wadray.RayDecimals); err != nil {
			return err
		}

		result, err := strategy.CalculateInterestRates(ctx, input)
		if err != nil {
			return err
		}

		view := views.RatesView(r.Asset, result)
		precision, _ := flags.GetInt32("precision")
		cmd.Println("utilization   ", number.Percent(view.Utilization, precision))
		cmd.Println("liquidity     ", number.Percent(view.Liquidity, precision))
		cmd.Println("variable      ", number.Percent(view.Variable, precision))
		cmd.Println("stable        ", number.Percent(view.Stable, precision))
		cmd.Println("overall borrow", number.Percent(view.OverallBorrow, precision))
		return nil
	},
}

// decimalFlag decimal flag as a fixed point integer
func decimalFlag(cmd *cobra.Command, name string, decimals int32) (*uint256.Int, error) {
	s, _ := cmd.Flags().GetString(name)
	v, err := parseDecimal(s, decimals)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	return v, nil
}

func init() {
	rootCmd.AddCommand(ratesCmd)

	flags := ratesCmd.Flags()
	flags.String("optimal", "0.8", "optimal utilization")
	flags.String("base", "0", "base variable borrow rate")
	flags.String("variable-slope1", "0.04", "variable rate slope below optimal utilization")
	flags.String("variable-slope2", "0.75", "variable rate slope above optimal utilization")
	flags.String("stable-slope1", "0.02", "stable rate slope below optimal utilization")
	flags.String("stable-slope2", "0.6", "stable rate slope above optimal utilization")
	flags.String("market-rate", "0.03", "market borrow rate from the lending rate oracle")
	flags.Uint64("reserve-factor", 1000, "reserve factor in bps")
	flags.String("available", "0", "available liquidity")
	flags.String("stable-debt", "0", "total stable debt")
	flags.String("variable-debt", "0", "total variable debt")
	flags.String("avg-stable-rate", "0", "average stable borrow rate")
	flags.Int32("precision", 2, "percent precision")
}
