package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// AsyncPublisher runs publishes on their own goroutine so a command never
// waits for the bus. Failures are logged and dropped; Flush waits for
// in-flight publishes.
type AsyncPublisher struct {
	next    publisher
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsyncPublisher(next publisher, timeout time.Duration, logger *slog.Logger) *AsyncPublisher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AsyncPublisher{
		next:    next,
		timeout: timeout,
		logger:  resolveLogger(logger),
	}
}

func (a *AsyncPublisher) Publish(ctx context.Context, topic string, event Event) error {
	// The request context is about to end; keep its values but not its cancellation.
	detached := context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		publishCtx, cancel := context.WithTimeout(detached, a.timeout)
		defer cancel()
		if err := a.next.Publish(publishCtx, topic, event); err != nil {
			a.logger.Error("async publish failed",
				"event", "events_async_publish_failed",
				"module", "internal/shared/events",
				"layer", "shared",
				"topic", topic,
				"event_type", event.EventType(),
				"error", err.Error(),
			)
		}
	}()
	return nil
}

func (a *AsyncPublisher) Flush() {
	a.wg.Wait()
}
