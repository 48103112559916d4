package cmd

import (
	"errors"

	httpadapter "fooddispatch/internal/adapters/in/http"
	"fooddispatch/internal/adapters/in/listener"
	"fooddispatch/internal/adapters/out/notifier"
	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CompositionRoot struct {
	config   Config
	logger   *zap.Logger
	storage  Storage
	policy   commands.DispatchPolicy
	notifier ports.Notifier
	closers  []func() error

	trigger *jobs.DispatchTrigger
}

func NewCompositionRoot(config Config, storage Storage, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		storage: storage,
		policy:  config.Policy.DispatchPolicy(),
	}

	if err := c.buildNotifier(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) buildNotifier() error {
	fanout := notifier.Fanout{notifier.NewLogNotifier(c.logger)}

	if len(c.config.KafkaBrokers) > 0 {
		kafka, err := notifier.NewKafkaNotifier(notifier.KafkaConfig{
			Brokers: c.config.KafkaBrokers,
			Topic:   c.config.KafkaTopic,
			Version: c.config.KafkaVersion,
		}, c.logger)
		if err != nil {
			return err
		}
		fanout = append(fanout, kafka)
		c.closers = append(c.closers, kafka.Close)
	}

	if c.config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		})
		fanout = append(fanout, notifier.NewRedisNotifier(client, c.config.RedisChannelPrefix))
		c.closers = append(c.closers, client.Close)
	}

	c.notifier = fanout
	return nil
}

// Close stops the dispatch trigger and releases notifier connections.
func (c *CompositionRoot) Close() error {
	if c.trigger != nil {
		c.trigger.Stop()
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoW() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.storage.UoWFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.courierUoW(), c.logger)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoW(), c.DispatchTrigger(), c.policy, c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.uow(), c.policy, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.dispatchUoW(), c.notifier, c.policy, c.logger)
}

func (c *CompositionRoot) CreateAssignBestCourierCommandHandler() commands.AssignBestCourierCommandHandler {
	return commands.NewAssignBestCourierCommandHandler(c.dispatchUoW(), c.storage.Sellers, c.notifier, c.policy, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierManuallyCommandHandler() commands.AssignCourierManuallyCommandHandler {
	return commands.NewAssignCourierManuallyCommandHandler(c.dispatchUoW(), c.notifier, c.policy, c.logger)
}

func (c *CompositionRoot) CreateRemoveAssignmentCommandHandler() commands.RemoveAssignmentCommandHandler {
	return commands.NewRemoveAssignmentCommandHandler(c.dispatchUoW(), c.notifier, c.policy, c.logger)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.storage.UoWFactory)
}

func (c *CompositionRoot) CreateGetCourierEarningsQueryHandler() queries.GetCourierEarningsQueryHandler {
	return queries.NewGetCourierEarningsQueryHandler(c.storage.UoWFactory)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.storage.UoWFactory)
}

func (c *CompositionRoot) CreateGetDispatchCandidatesQueryHandler() queries.GetDispatchCandidatesQueryHandler {
	return queries.NewGetDispatchCandidatesQueryHandler(c.storage.UoWFactory, c.storage.Sellers, c.policy.MaxConcurrentDeliveries)
}

// DispatchTrigger is shared by the seller panel, the poll job and the
// LISTEN channel so in-flight de-duplication spans all three.
func (c *CompositionRoot) DispatchTrigger() *jobs.DispatchTrigger {
	if c.trigger == nil {
		c.trigger = jobs.NewDispatchTrigger(c.CreateAssignBestCourierCommandHandler(), c.logger)
	}
	return c.trigger
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCourier:          c.CreateCreateCourierCommandHandler(),
		SetCourierAvailability: c.CreateSetCourierAvailabilityCommandHandler(),
		UpdateCourierLocation:  c.CreateUpdateCourierLocationCommandHandler(),

		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		AdvanceOrder: c.CreateAdvanceOrderCommandHandler(),
		DeliverOrder: c.CreateDeliverOrderCommandHandler(),
		CancelOrder:  c.CreateCancelOrderCommandHandler(),

		AssignBestCourier:     c.CreateAssignBestCourierCommandHandler(),
		AssignCourierManually: c.CreateAssignCourierManuallyCommandHandler(),
		RemoveAssignment:      c.CreateRemoveAssignmentCommandHandler(),

		GetAllCouriers:        c.CreateGetAllCouriersQueryHandler(),
		GetCourierEarnings:    c.CreateGetCourierEarningsQueryHandler(),
		GetActiveOrders:       c.CreateGetActiveOrdersQueryHandler(),
		GetDispatchCandidates: c.CreateGetDispatchCandidatesQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	poll := jobs.NewReadyOrderPollJob(
		c.storage.UoWFactory,
		c.DispatchTrigger(),
		c.config.Policy.PollSpec,
		c.config.Policy.PollBatch,
		c.policy.StorageTimeout,
		c.logger,
	)
	return jobs.NewJobManager(poll, c.DispatchTrigger())
}

// CreateOrderReadyListener returns nil when push notifications are disabled
// or the storage driver has no LISTEN support.
func (c *CompositionRoot) CreateOrderReadyListener() *listener.OrderReadyListener {
	if c.storage.DB == nil || !c.config.Policy.ListenForReady {
		return nil
	}
	return listener.NewOrderReadyListener(c.config.DSN(), postgres.OrderReadyChannel, c.DispatchTrigger(), c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
