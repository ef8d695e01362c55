package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"talentry/internal/audit/metrics"
	id "talentry/pkg/domain"
)

// ErrBufferFull is returned in async mode when the inbox cannot accept
// another event. Callers treat audit emission as best-effort, so a full
// buffer drops the event rather than blocking the request path.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher captures structured audit events. It is append-only and delegates
// persistence to a Store so tests can swap implementations. In async mode a
// background worker drains an in-process buffer; Close flushes it.
type Publisher struct {
	store   Store
	sinks   []Sink
	logger  *slog.Logger
	metrics *metrics.Metrics

	inbox     chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous delivery with the
// given inbox capacity. Emit never blocks; when the buffer is full the event
// is dropped with ErrBufferFull.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) { p.inbox = make(chan Event, size) }
}

// WithSink registers an additional delivery target (e.g. the Kafka sink).
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

// WithLogger attaches a logger for background delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics attaches pipeline counters (published, dropped, failed).
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

// Emit records an event. A zero timestamp is stamped with the current time
// and a missing category is derived from the action.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		return p.deliver(ctx, event)
	}

	select {
	case p.inbox <- event:
		p.metrics.IncrementPublished()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.metrics.IncrementDropped()
		return ErrBufferFull
	}
}

// List returns the recorded events for an account, oldest first.
func (p *Publisher) List(ctx context.Context, accountID id.AccountID) ([]Event, error) {
	return p.store.ListByAccount(ctx, accountID)
}

// Close drains the async buffer and closes all sinks. Call only after all
// emitters have stopped.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			<-p.done
		}
		for _, sink := range p.sinks {
			sink.Close()
		}
	})
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		if err := p.deliver(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("audit delivery failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, event Event) error {
	err := p.store.Append(ctx, event)
	for _, sink := range p.sinks {
		if sinkErr := sink.Publish(ctx, event); sinkErr != nil {
			err = errors.Join(err, sinkErr)
		}
	}
	if err != nil {
		p.metrics.IncrementDeliveryFailure()
	}
	return err
}
