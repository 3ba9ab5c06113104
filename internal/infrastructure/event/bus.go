package event

import (
	"context"
	"sync"

	"github.com/partsflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Bus dispatches domain events to subscribed handlers in-process and
// synchronously. A failing or panicking handler is logged and the
// remaining handlers still run; publishing never fails the business
// operation that raised the events.
type Bus struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	catchAll []shared.EventHandler
	logger   *zap.Logger
}

// NewBus creates a new in-process event bus
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		byType: make(map[string][]shared.EventHandler),
		logger: logger,
	}
}

// Subscribe registers a handler for the given event types. When none
// are given the handler's own EventTypes() decide; an empty result
// subscribes it to every event.
func (b *Bus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		b.catchAll = append(b.catchAll, handler)
	} else {
		for _, eventType := range eventTypes {
			b.byType[eventType] = append(b.byType[eventType], handler)
		}
	}

	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Publish delivers the events to every matching handler
func (b *Bus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, handler := range b.handlersFor(evt.EventType()) {
			if err := b.dispatch(ctx, handler, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

func (b *Bus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.byType[eventType]
	handlers := make([]shared.EventHandler, 0, len(typed)+len(b.catchAll))
	handlers = append(handlers, typed...)
	handlers = append(handlers, b.catchAll...)
	return handlers
}

func (b *Bus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, evt)
}

var _ shared.EventPublisher = (*Bus)(nil)
