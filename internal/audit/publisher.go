package audit

import (
	"context"
	"log/slog"

	"shoptrack/pkg/requestcontext"
)

// Sink receives audit events. Implementations: Kafka, memory.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher accepts events from domain services and hands them to the
// worker through a buffered channel. Emission is fire-and-forget: a full
// buffer drops the event rather than stalling the request path.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for drop reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithBuffer overrides the default inbox capacity.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, n)
	}
}

func NewPublisher(opts ...Option) *Publisher {
	p := &Publisher{
		inbox: make(chan Event, 256),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inbox exposes the event channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit queues an event. The request-scoped timestamp and request ID are
// filled in when the caller left them empty.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit inbox full, event dropped",
				"action", event.Action,
				"shop_id", event.ShopID,
			)
		}
	}
}
