package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/partsflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "StubAggregate", uuid.New()),
	}
}

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) handledEvents() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestBusPublish(t *testing.T) {
	t.Run("delivers to a typed subscriber", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"order.created"}}
		bus.Subscribe(handler)

		evt := newStubEvent("order.created")
		require.NoError(t, bus.Publish(context.Background(), evt))

		handled := handler.handledEvents()
		require.Len(t, handled, 1)
		assert.Equal(t, evt.EventID(), handled[0].EventID())
	})

	t.Run("skips subscribers of other types", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"order.created"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(), newStubEvent("order.cancelled")))
		assert.Empty(t, handler.handledEvents())
	})

	t.Run("catch-all subscriber receives every event", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(),
			newStubEvent("order.created"), newStubEvent("invoice.paid")))
		assert.Len(t, handler.handledEvents(), 2)
	})

	t.Run("explicit subscription types win over the handler's own", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{"order.created"}}
		bus.Subscribe(handler, "invoice.paid")

		require.NoError(t, bus.Publish(context.Background(), newStubEvent("order.created")))
		assert.Empty(t, handler.handledEvents())

		require.NoError(t, bus.Publish(context.Background(), newStubEvent("invoice.paid")))
		assert.Len(t, handler.handledEvents(), 1)
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus := NewBus(zap.New(core))

		failing := &recordingHandler{err: errors.New("downstream unavailable")}
		healthy := &recordingHandler{}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(context.Background(), newStubEvent("order.created")))
		assert.Len(t, healthy.handledEvents(), 1)
		assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
	})

	t.Run("a panicking handler is recovered", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus := NewBus(zap.New(core))

		bus.Subscribe(&recordingHandler{panics: true})
		healthy := &recordingHandler{}
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(context.Background(), newStubEvent("order.created")))
		assert.Len(t, healthy.handledEvents(), 1)
		assert.Equal(t, 1, logs.FilterMessage("event handler panicked").Len())
	})
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewAuditLogHandler(zap.New(core))

	evt := newStubEvent("order.created")
	require.NoError(t, handler.Handle(context.Background(), evt))

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "order.created", fields["event_type"])
	assert.Equal(t, "StubAggregate", fields["aggregate_type"])
	assert.Equal(t, evt.AggregateID().String(), fields["aggregate_id"])
}
