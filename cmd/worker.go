package cmd

import (
	"lending/worker/accrual"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run the accrual keeper",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "worker")
		ctx = logger.WithContext(ctx, log)
		c := mustConfig()

		clk := provideClock()
		reserveSrv := provideReserveService(provideReserveStore(), clk)
		if err := bootstrapReserves(ctx, reserveSrv, provideUserConfigurationStore(), clk, provideLendingRateOracle()); err != nil {
			log.WithError(err).Fatalln("bootstrap reserves")
		}

		w, err := accrual.New(provideLocation(), c.Keeper.Spec, reserveSrv)
		if err != nil {
			log.WithError(err).Fatalln("accrual worker")
		}

		ctx = signal.WithContext(ctx)
		_ = w.Start()
		log.Infoln("keeper started", c.Keeper.Spec)

		<-ctx.Done()
		_ = w.Stop()
		log.Infoln("keeper stopped")
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
