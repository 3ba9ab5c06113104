package event

import (
	"context"

	"github.com/partsflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes every domain event to the structured log,
// giving the procurement flow an audit trail.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle logs the event with its aggregate identity
func (h *AuditLogHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil so the handler receives every event
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}
