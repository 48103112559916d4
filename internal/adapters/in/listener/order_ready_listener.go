// Package listener receives Postgres notifications for orders that became
// ready and hands them to the dispatch trigger.
package listener

import (
	"context"
	"sync"
	"time"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pingInterval = 90 * time.Second

type notificationSource interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// OrderReadyListener subscribes to the order_ready channel. A nil
// notification means the connection was re-established and notifications
// may have been lost; the poll job picks those orders up.
type OrderReadyListener struct {
	source   notificationSource
	channel  string
	dispatch commands.DispatchRequester
	logger   *zap.Logger

	pingEvery time.Duration
}

func NewOrderReadyListener(dsn, channel string, dispatch commands.DispatchRequester, logger *zap.Logger) *OrderReadyListener {
	logger = logger.Named("order_ready_listener")
	pl := pq.NewListener(dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("listener connection event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})
	return newOrderReadyListener(pl, channel, dispatch, logger)
}

func newOrderReadyListener(source notificationSource, channel string, dispatch commands.DispatchRequester, logger *zap.Logger) *OrderReadyListener {
	return &OrderReadyListener{
		source:    source,
		channel:   channel,
		dispatch:  dispatch,
		logger:    logger,
		pingEvery: pingInterval,
	}
}

// Run listens until ctx is cancelled and closes the connection on return,
// after any health ping still in progress.
func (l *OrderReadyListener) Run(ctx context.Context) error {
	var pings sync.WaitGroup
	defer func() {
		pings.Wait()
		_ = l.source.Close()
	}()

	if err := l.source.Listen(l.channel); err != nil {
		return err
	}
	l.logger.Info("listening for ready orders", zap.String("channel", l.channel))

	ticker := time.NewTicker(l.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-l.source.NotificationChannel():
			if !ok {
				return nil
			}
			l.handle(ctx, n)
		case <-ticker.C:
			pings.Add(1)
			go func() {
				defer pings.Done()
				if err := l.source.Ping(); err != nil {
					l.logger.Warn("listener ping failed", zap.Error(err))
				}
			}()
		}
	}
}

func (l *OrderReadyListener) handle(ctx context.Context, n *pq.Notification) {
	if n == nil {
		l.logger.Info("listener reconnected")
		return
	}

	orderID, err := kernel.UUIDFromString(n.Extra)
	if err != nil {
		l.logger.Warn("ignoring malformed order_ready payload", zap.String("payload", n.Extra))
		return
	}
	l.dispatch.RequestDispatch(ctx, orderID)
}
