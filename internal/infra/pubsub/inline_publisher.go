package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"morgenstar/internal/domain/lifecycle"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
)

const (
	defaultInlineConcurrency = 8
	inlineQueueFactor        = 16
)

// ErrPublisherClosed is returned for events published after Close.
var ErrPublisherClosed = errors.New("publisher closed")

type inlineJob struct {
	ctx   context.Context
	event *service.ShopEvent
}

// inlinePublisher hands events to a fixed set of in-process workers through a bounded queue.
// Publishing never waits: when the queue is full the event is dropped and logged.
type inlinePublisher struct {
	handler service.EventHandler
	logger  *slog.Logger
	queue   chan inlineJob
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewInlinePublisher creates a publisher that dispatches without a broker
func NewInlinePublisher(handler service.EventHandler, logger *slog.Logger, concurrency int) service.EventPublisher {
	if concurrency <= 0 {
		concurrency = defaultInlineConcurrency
	}

	p := &inlinePublisher{
		handler: handler,
		logger:  logger,
		queue:   make(chan inlineJob, concurrency*inlineQueueFactor),
	}

	p.wg.Add(concurrency)
	for range concurrency {
		go p.work()
	}

	return p
}

// PublishShopEvent enqueues the event and returns at once; the handler runs detached from ctx cancellation.
func (p *inlinePublisher) PublishShopEvent(ctx context.Context, event *service.ShopEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return errors.WithStack(ErrPublisherClosed)
	}

	select {
	case p.queue <- inlineJob{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		p.logger.WarnContext(ctx, "[InlinePubSub] Queue full, dropping event",
			slog.String("event_id", event.EventID),
			slog.String("type", string(event.Type)),
			slog.Int("queue_size", cap(p.queue)),
		)
	}

	return nil
}

func (p *inlinePublisher) work() {
	defer p.wg.Done()

	for job := range p.queue {
		p.handle(job)
	}
}

func (p *inlinePublisher) handle(job inlineJob) {
	ctx, cancel := context.WithTimeout(job.ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := p.handler.HandleShopEvent(ctx, job.event); err != nil {
		p.logger.ErrorContext(ctx, "[InlinePubSub] Failed to handle event",
			slog.String("event_id", job.event.EventID),
			slog.String("type", string(job.event.Type)),
			slog.Any("error", err),
		)
	}
}

// Close stops accepting events and waits for the queued ones.
func (p *inlinePublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()

		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()

	return nil
}
