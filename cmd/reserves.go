package cmd

import (
	"encoding/json"

	"lending/handler/views"
	"lending/pkg/wadray"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var reservesCmd = &cobra.Command{
	Use:   "reserves",
	Short: "list the configured reserves after bootstrap",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "reserves")
		ctx = logger.WithContext(ctx, log)
		mustConfig()

		clk := provideClock()
		reserveSrv := provideReserveService(provideReserveStore(), clk)
		if err := bootstrapReserves(ctx, reserveSrv, provideUserConfigurationStore(), clk, provideLendingRateOracle()); err != nil {
			return err
		}

		reserves, err := reserveSrv.All(ctx)
		if err != nil {
			return err
		}

		list := make([]*views.Reserve, 0, len(reserves))
		for _, r := range reserves {
			view := views.ReserveView(r)
			available, err := r.DepositToken.UnderlyingBalance(ctx)
			if err != nil {
				return err
			}

			view.AvailableLiquidity = wadray.ToDecimal(available, int32(r.Configuration.Decimals))
			list = append(list, view)
		}

		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reservesCmd)
}
