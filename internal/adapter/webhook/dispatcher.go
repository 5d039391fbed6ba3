package webhook

import (
	"context"
	"log/slog"
	"sync"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/observ"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

// Listener handles one event. Errors are logged and swallowed; a listener
// can never fail the operation that emitted the event, and is never removed
// for failing.
type Listener func(ctx context.Context, ev domain.WebhookEvent) error

// Dispatcher fans events out to listeners synchronously, in registration
// order. There is no unsubscribe, no retry and no persistence.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
	log       *slog.Logger
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

func (d *Dispatcher) Subscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

func (d *Dispatcher) Publish(ctx context.Context, ev domain.WebhookEvent) {
	d.mu.RLock()
	listeners := d.listeners
	d.mu.RUnlock()

	observ.WebhookEvents.WithLabelValues(string(ev.EventType)).Inc()
	for i, l := range listeners {
		d.invoke(ctx, i, l, ev)
	}
}

func (d *Dispatcher) invoke(ctx context.Context, idx int, l Listener, ev domain.WebhookEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("webhook listener panic",
				"listener", idx, "event_id", ev.EventID, "event_type", ev.EventType, "panic", r)
		}
	}()
	if err := l(ctx, ev); err != nil {
		d.log.Error("webhook listener error",
			"listener", idx, "event_id", ev.EventID, "event_type", ev.EventType, "error", err)
	}
}

var _ usecase.EventSink = (*Dispatcher)(nil)
