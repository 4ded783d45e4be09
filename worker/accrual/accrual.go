package accrual

import (
	"context"
	"time"

	"lending/core"
	"lending/pkg/concurrency"
	"lending/pkg/wadray"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker keeper that accrues every reserve and refreshes its rates, so
// indices stay current even without user activity
type Worker struct {
	worker.BaseJob
	reserveSrv core.IReserveService
	limit      int
}

// New new accrual worker running on spec, "@every 15s"
func New(
	location *time.Location,
	spec string,
	reserveSrv core.IReserveService,
) (*Worker, error) {
	job := Worker{
		reserveSrv: reserveSrv,
		limit:      8,
	}

	if location == nil {
		location = time.UTC
	}

	job.Cron = cron.New(cron.WithLocation(location))
	if _, err := job.Cron.AddFunc(spec, job.Run); err != nil {
		return nil, err
	}

	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")
	ctx = logger.WithContext(ctx, log)

	reserves, err := w.reserveSrv.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("reserves.All")
		return err
	}

	tasks := make([]func(), 0, len(reserves))
	for _, r := range reserves {
		asset := r.Asset
		tasks = append(tasks, func() {
			if err := w.refresh(ctx, asset); err != nil {
				log.WithError(err).WithField("asset", asset).Errorln("refresh reserve")
			}
		})
	}

	concurrency.AwaitWithLimit(concurrency.NewGoLimit(w.limit), tasks...)
	return nil
}

func (w *Worker) refresh(ctx context.Context, asset string) error {
	if err := w.reserveSrv.UpdateState(ctx, asset); err != nil {
		return err
	}

	return w.reserveSrv.UpdateInterestRates(ctx, asset, wadray.Zero(), wadray.Zero())
}
