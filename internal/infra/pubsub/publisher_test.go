package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"morgenstar/config"
	"morgenstar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingHandler struct {
	mu     sync.Mutex
	events []*service.ShopEvent
	ctxErr []error
}

func (h *recordingHandler) HandleShopEvent(ctx context.Context, event *service.ShopEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, event)
	h.ctxErr = append(h.ctxErr, ctx.Err())

	return nil
}

func TestInlinePublisher_DispatchesDetachedFromRequest(t *testing.T) {
	handler := &recordingHandler{}
	publisher := NewInlinePublisher(handler, newDiscardLogger(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		require.NoError(t, publisher.PublishShopEvent(ctx, &service.ShopEvent{EventID: id, Type: service.ShopEventOrderCreated}))
	}
	cancel()

	require.NoError(t, publisher.Close())

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Len(t, handler.events, 3)
	for _, err := range handler.ctxErr {
		assert.NoError(t, err)
	}
}

func TestInlinePublisher_DoesNotBlockWhenHandlersHang(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	handler := &blockingHandler{block: block, started: started}
	publisher := NewInlinePublisher(handler, newDiscardLogger(), 1)

	require.NoError(t, publisher.PublishShopEvent(context.Background(), &service.ShopEvent{EventID: "evt-0"}))
	<-started

	// One event is being handled; fill the queue and overflow it.
	queueSize := inlineQueueFactor
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < queueSize+5; i++ {
			assert.NoError(t, publisher.PublishShopEvent(context.Background(), &service.ShopEvent{EventID: "evt-n"}))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publishing blocked behind a hanging handler")
	}

	close(block)
	require.NoError(t, publisher.Close())
	assert.Equal(t, int32(1+queueSize), handler.handled.Load())
}

func TestInlinePublisher_RejectsAfterClose(t *testing.T) {
	publisher := NewInlinePublisher(&recordingHandler{}, newDiscardLogger(), 2)
	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	err := publisher.PublishShopEvent(context.Background(), &service.ShopEvent{EventID: "late"})
	assert.ErrorIs(t, err, ErrPublisherClosed)
}

type blockingHandler struct {
	block   chan struct{}
	started chan struct{}
	handled atomic.Int32
}

func (h *blockingHandler) HandleShopEvent(_ context.Context, _ *service.ShopEvent) error {
	select {
	case h.started <- struct{}{}:
	default:
	}
	<-h.block
	h.handled.Add(1)

	return nil
}

func TestLocalHTTPPublisher_SendsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	event := &service.ShopEvent{
		RequestID: "req-42",
		EventID:   "evt-42",
		Type:      service.ShopEventOrderStatusChanged,
		OrderID:   "order-1",
		Status:    "SHIPPED",
	}

	require.NoError(t, publisher.PublishShopEvent(context.Background(), event))

	assert.Equal(t, "req-42", requestID)
	assert.Equal(t, "evt-42", received.Message.MessageID)
	assert.Equal(t, "order.status_changed", received.Message.Attributes["event_type"])
	assert.Equal(t, "order-1", received.Message.Attributes["order_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.ShopEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())

	err := publisher.PublishShopEvent(context.Background(), &service.ShopEvent{EventID: "evt-1"})
	assert.ErrorContains(t, err, "503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		handler service.EventHandler
		wantErr string
	}{
		{name: "not configured", cfg: nil},
		{name: "inline", cfg: &config.PubSubConfig{Provider: "inline"}, handler: &recordingHandler{}},
		{name: "inline without handler", cfg: &config.PubSubConfig{Provider: "inline"}, wantErr: "event handler is required"},
		{name: "local", cfg: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}, wantErr: "local endpoint is required"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google"}, wantErr: "project ID is required"},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: "google", ProjectID: "p"}, wantErr: "topic ID is required"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:      fxtest.NewLifecycle(t),
				Ctx:     context.Background(),
				Config:  &config.Config{PubSub: tt.cfg},
				Logger:  newDiscardLogger(),
				Handler: tt.handler,
			})

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, publisher)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, publisher)
		})
	}
}
