package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lending/handler"
	"lending/worker/accrual"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lending api server with the accrual keeper",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)
		c := mustConfig()

		clk := provideClock()
		reserves := provideReserveStore()
		reserveSrv := provideReserveService(reserves, clk)
		accountSrv := provideAccountService(reserves, providePriceOracle())
		userConfigs := provideUserConfigurationStore()

		if err := bootstrapReserves(ctx, reserveSrv, userConfigs, clk, provideLendingRateOracle()); err != nil {
			log.WithError(err).Fatalln("bootstrap reserves")
		}

		if keeper, _ := cmd.Flags().GetBool("keeper"); keeper {
			w, err := accrual.New(provideLocation(), c.Keeper.Spec, reserveSrv)
			if err != nil {
				log.WithError(err).Fatalln("accrual worker")
			}

			_ = w.Start()
			defer w.Stop()
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = c.Server.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: handler.New(version, reserves, reserveSrv, accountSrv, userConfigs).Handler(),
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, default from config")
	serverCmd.Flags().Bool("keeper", true, "run the accrual keeper in process")
}
