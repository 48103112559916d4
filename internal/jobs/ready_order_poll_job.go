package jobs

import (
	"context"
	"time"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultPollSpec  = "*/10 * * * * *"
	DefaultPollBatch = 50
)

// ReadyOrderPollJob periodically picks up ready orders that still have no
// courier and requests dispatch for each. It covers missed push
// notifications and orders that found no courier on the first attempt.
type ReadyOrderPollJob struct {
	uowFactory ports.UnitOfWorkFactory
	trigger    commands.DispatchRequester
	spec       string
	batch      int
	timeout    time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewReadyOrderPollJob(
	uowFactory ports.UnitOfWorkFactory,
	trigger commands.DispatchRequester,
	spec string,
	batch int,
	timeout time.Duration,
	logger *zap.Logger,
) *ReadyOrderPollJob {
	if spec == "" {
		spec = DefaultPollSpec
	}
	if batch <= 0 {
		batch = DefaultPollBatch
	}
	return &ReadyOrderPollJob{
		uowFactory: uowFactory,
		trigger:    trigger,
		spec:       spec,
		batch:      batch,
		timeout:    timeout,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.Named("ready_order_poll_job"),
	}
}

// Start schedules the poll.
func (j *ReadyOrderPollJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if j.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, j.timeout)
			defer cancel()
		}
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("ready order poll failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("ready order poll started", zap.String("spec", j.spec))
	return nil
}

// Stop waits for a running poll to finish.
func (j *ReadyOrderPollJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("ready order poll stopped")
}

// RunOnce requests dispatch for one batch and returns how many orders it
// found.
func (j *ReadyOrderPollJob) RunOnce(ctx context.Context) (int, error) {
	orders, err := j.uowFactory.Create().OrderRepository().GetAllReadyUnassigned(ctx, j.batch)
	if err != nil {
		return 0, err
	}

	for _, o := range orders {
		j.trigger.RequestDispatch(ctx, o.ID())
	}
	if len(orders) > 0 {
		j.logger.Debug("ready orders queued for dispatch", zap.Int("count", len(orders)))
	}
	return len(orders), nil
}
