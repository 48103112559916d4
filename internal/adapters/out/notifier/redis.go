package notifier

import (
	"context"
	"errors"
	"fmt"

	"fooddispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultChannelPrefix = "dispatch"

// Publisher is the part of a go-redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier pushes dispatch events to the live panels over pub/sub. The
// seller panel listens on <prefix>:seller:<id>, the courier app on
// <prefix>:courier:<id>.
type RedisNotifier struct {
	client Publisher
	prefix string
}

func NewRedisNotifier(client Publisher, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisNotifier{client: client, prefix: prefix}
}

func (n *RedisNotifier) NotifyDispatch(ctx context.Context, event ports.DispatchEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}

	channels := []string{n.SellerChannel(event.SellerID.String())}
	if event.CourierID != nil {
		channels = append(channels, n.CourierChannel(event.CourierID.String()))
	}

	var errs []error
	for _, ch := range channels {
		if err := n.client.Publish(ctx, ch, payload).Err(); err != nil {
			errs = append(errs, fmt.Errorf("publish to %s: %w", ch, err))
		}
	}
	return errors.Join(errs...)
}

func (n *RedisNotifier) SellerChannel(sellerID string) string {
	return n.prefix + ":seller:" + sellerID
}

func (n *RedisNotifier) CourierChannel(courierID string) string {
	return n.prefix + ":courier:" + courierID
}
