package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ticketkit/ticket-store/internal/events"
	"github.com/ticketkit/ticket-store/internal/observability"
)

// publishTimeout bounds a single broker call, including during the final drain.
const publishTimeout = 5 * time.Second

// Sink receives events taken off the queue.
type Sink interface {
	Publish(ctx context.Context, event events.Event) (int64, error)
}

// PublishWorker forwards dispatched events to a Sink from its own goroutine,
// so store operations never wait on the broker.
type PublishWorker struct {
	queue   chan events.Event
	sink    Sink
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewPublishWorker creates a worker with a queue of queueSize events.
func NewPublishWorker(sink Sink, queueSize int, logger *zap.Logger, metrics *observability.Metrics) *PublishWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &PublishWorker{
		queue:   make(chan events.Event, queueSize),
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterHandlers subscribes the worker to every ticket event.
func (w *PublishWorker) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	events.SubscribeAll(dispatcher, w.enqueue)
}

// enqueue never blocks; a full queue drops the event.
func (w *PublishWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("event queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Uint64("ticket_id", uint64(event.TicketID)))
		w.metrics.RecordEvent(string(event.Type), "dropped")
		return nil
	}
}

// Run publishes queued events until ctx is done, then drains what is left.
func (w *PublishWorker) Run(ctx context.Context) error {
	for {
		select {
		case event := <-w.queue:
			w.publish(ctx, event)
		case <-ctx.Done():
			w.drain(ctx)
			return nil
		}
	}
}

func (w *PublishWorker) drain(ctx context.Context) {
	for {
		select {
		case event := <-w.queue:
			w.publish(ctx, event)
		default:
			return
		}
	}
}

// publish detaches from ctx cancellation so queued events still go out on shutdown.
func (w *PublishWorker) publish(ctx context.Context, event events.Event) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	receivers, err := w.sink.Publish(publishCtx, event)
	if err != nil {
		w.logger.Warn("publish event failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		w.metrics.RecordEvent(string(event.Type), "failed")
		return
	}
	w.logger.Debug("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("receivers", receivers))
	w.metrics.RecordEvent(string(event.Type), "published")
}
