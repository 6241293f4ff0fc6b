package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and forwards them to the
// sink. Sink failures are logged and the worker keeps going; the stream
// is best-effort and must never take the service down with it.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit event delivery failed",
					"action", event.Action,
					"shop_id", event.ShopID,
					"error", err,
				)
			}
		}
	}
}
