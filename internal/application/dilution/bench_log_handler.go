package dilution

import (
	"context"

	"github.com/labbench/backend/internal/domain/apparatus"
	"github.com/labbench/backend/internal/domain/notebook"
	"github.com/labbench/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BenchLogHandler writes glassware and notebook events to the structured log
type BenchLogHandler struct {
	logger *zap.Logger
}

// NewBenchLogHandler creates a new handler for bench events
func NewBenchLogHandler(logger *zap.Logger) *BenchLogHandler {
	return &BenchLogHandler{logger: logger.Named("bench")}
}

// EventTypes returns the event types this handler is interested in
func (h *BenchLogHandler) EventTypes() []string {
	return []string{
		apparatus.EventTypeSolutionAdded,
		apparatus.EventTypeFilled,
		apparatus.EventTypeTransferred,
		notebook.EventTypeEntryRecorded,
	}
}

// Handle logs one event
func (h *BenchLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *apparatus.SolutionAddedEvent:
		fields = append(fields, zap.Strings("solutes", e.Solutes), zap.Stringer("volume", e.Volume))
	case *apparatus.FilledEvent:
		fields = append(fields, zap.Stringer("volume", e.Volume))
	case *apparatus.TransferredEvent:
		fields = append(fields,
			zap.String("to", e.To.String()),
			zap.String("to_kind", string(e.ToKind)),
			zap.Stringer("volume", e.Volume),
		)
	case *notebook.EntryRecordedEvent:
		fields = append(fields,
			zap.String("title", e.Title),
			zap.String("final_concentration", e.FinalConcentration.GoString()),
		)
	}

	h.logger.Info("bench event", fields...)
	return nil
}

var _ shared.EventHandler = (*BenchLogHandler)(nil)
