package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fooddispatch/internal/core/ports"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const DefaultTopic = "dispatch.events"

var ErrNotifierClosed = errors.New("notifier is closed")

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Version string
}

// KafkaNotifier publishes dispatch events through an async producer. A send
// only waits for the producer's input queue; delivery errors are logged by a
// background drain.
type KafkaNotifier struct {
	producer sarama.AsyncProducer
	topic    string
	logger   *zap.Logger
	wg       sync.WaitGroup

	// mu is held for reading while a message is handed to the producer and
	// for writing while closing it.
	mu     sync.RWMutex
	closed bool
}

func NewKafkaNotifier(cfg KafkaConfig, logger *zap.Logger) (*KafkaNotifier, error) {
	pConfig := sarama.NewConfig()
	if cfg.Version != "" {
		version, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return nil, fmt.Errorf("parse kafka version: %w", err)
		}
		pConfig.Version = version
	}
	pConfig.Producer.RequiredAcks = sarama.WaitForLocal
	pConfig.Producer.Return.Errors = true
	pConfig.Net.TLS.Enable = false

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, pConfig)
	if err != nil {
		return nil, fmt.Errorf("start kafka producer: %w", err)
	}

	return NewKafkaNotifierWithProducer(producer, cfg.Topic, logger), nil
}

// NewKafkaNotifierWithProducer wraps an existing producer. The notifier takes
// ownership and closes it in Close.
func NewKafkaNotifierWithProducer(producer sarama.AsyncProducer, topic string, logger *zap.Logger) *KafkaNotifier {
	if topic == "" {
		topic = DefaultTopic
	}
	n := &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka-notifier"),
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for perr := range producer.Errors() {
			n.logger.Error("failed to produce dispatch event",
				zap.String("topic", perr.Msg.Topic),
				zap.Error(perr.Err),
			)
		}
	}()

	return n
}

func (n *KafkaNotifier) NotifyDispatch(ctx context.Context, event ports.DispatchEvent) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(event.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierClosed
	}

	select {
	case n.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes buffered messages and stops the error drain. Later sends
// return ErrNotifierClosed.
func (n *KafkaNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.producer.AsyncClose()
	n.mu.Unlock()

	n.wg.Wait()
	return nil
}
