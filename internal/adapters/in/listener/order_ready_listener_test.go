package listener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	notifications chan *pq.Notification
	listened      []string
	listenErr     error
	closed        bool
}

func (s *fakeSource) Listen(channel string) error {
	s.listened = append(s.listened, channel)
	return s.listenErr
}

func (s *fakeSource) NotificationChannel() <-chan *pq.Notification { return s.notifications }
func (s *fakeSource) Ping() error                                 { return nil }

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type recordingRequester struct {
	mu  sync.Mutex
	ids []kernel.UUID
}

func (r *recordingRequester) RequestDispatch(_ context.Context, id kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *recordingRequester) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func TestOrderReadyListener_RequestsDispatchForNotifiedOrders(t *testing.T) {
	source := &fakeSource{notifications: make(chan *pq.Notification, 4)}
	requester := &recordingRequester{}
	l := newOrderReadyListener(source, "order_ready", requester, zap.NewNop())

	orderID := kernel.NewUUID()
	source.notifications <- nil
	source.notifications <- &pq.Notification{Channel: "order_ready", Extra: "not-a-uuid"}
	source.notifications <- &pq.Notification{Channel: "order_ready", Extra: orderID.String()}
	close(source.notifications)

	require.NoError(t, l.Run(t.Context()))

	assert.Equal(t, []string{"order_ready"}, source.listened)
	assert.Equal(t, []kernel.UUID{orderID}, requester.ids)
	assert.True(t, source.closed)
}

func TestOrderReadyListener_StopsOnContextCancel(t *testing.T) {
	source := &fakeSource{notifications: make(chan *pq.Notification)}
	requester := &recordingRequester{}
	l := newOrderReadyListener(source, "order_ready", requester, zap.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.Zero(t, requester.count())
	assert.True(t, source.closed)
}

func TestOrderReadyListener_ListenFailure(t *testing.T) {
	boom := errors.New("connection refused")
	source := &fakeSource{notifications: make(chan *pq.Notification), listenErr: boom}
	l := newOrderReadyListener(source, "order_ready", &recordingRequester{}, zap.NewNop())

	require.ErrorIs(t, l.Run(t.Context()), boom)
	assert.True(t, source.closed)
}

// slowPingSource blocks Ping until released and records whether the
// connection was closed underneath a running ping.
type slowPingSource struct {
	*fakeSource

	started chan struct{}
	once    sync.Once
	release chan struct{}

	mu              sync.Mutex
	isClosed        bool
	closedUnderPing bool
}

func (s *slowPingSource) Ping() error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isClosed {
		s.closedUnderPing = true
	}
	return nil
}

func (s *slowPingSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isClosed = true
	return nil
}

func TestOrderReadyListener_ClosesAfterRunningPing(t *testing.T) {
	source := &slowPingSource{
		fakeSource: &fakeSource{notifications: make(chan *pq.Notification)},
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	l := newOrderReadyListener(source, "order_ready", &recordingRequester{}, zap.NewNop())
	l.pingEvery = time.Millisecond

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case <-source.started:
	case <-time.After(2 * time.Second):
		t.Fatal("no ping was sent")
	}
	cancel()

	select {
	case <-done:
		t.Fatal("Run returned while a ping was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(source.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	assert.True(t, source.isClosed)
	assert.False(t, source.closedUnderPing)
}
