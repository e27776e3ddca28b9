package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ticketkit/ticket-store/internal/events"
	"github.com/ticketkit/ticket-store/internal/observability"
)

type fakeSink struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (f *fakeSink) Publish(_ context.Context, event events.Event) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.published = append(f.published, event)
	return 1, nil
}

func publishAll(t *testing.T, dispatcher events.Dispatcher, n int) {
	t.Helper()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		if err := dispatcher.Publish(context.Background(), events.NewEvent(events.EventTicketCreated, 1, at, nil)); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
}

func TestPublishWorkerDrainsOnShutdown(t *testing.T) {
	sink := &fakeSink{}
	metrics := observability.NewMetrics()
	w := NewPublishWorker(sink, 10, zap.NewNop(), metrics)
	dispatcher := events.NewInMemoryDispatcher()
	w.RegisterHandlers(dispatcher)

	publishAll(t, dispatcher, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.published) != 3 {
		t.Fatalf("expected 3 published events, got %d", len(sink.published))
	}
	if got := countEvent(metrics, "event|ticket_created|published"); got != 3 {
		t.Fatalf("expected 3 published counters, got %d", got)
	}
}

func TestPublishWorkerDeliversWhileRunning(t *testing.T) {
	sink := &fakeSink{}
	w := NewPublishWorker(sink, 10, zap.NewNop(), nil)
	dispatcher := events.NewInMemoryDispatcher()
	w.RegisterHandlers(dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	publishAll(t, dispatcher, 5)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.published) != 5 {
		t.Fatalf("expected 5 published events, got %d", len(sink.published))
	}
}

func TestPublishWorkerDropsWhenFull(t *testing.T) {
	metrics := observability.NewMetrics()
	w := NewPublishWorker(&fakeSink{}, 1, zap.NewNop(), metrics)
	dispatcher := events.NewInMemoryDispatcher()
	w.RegisterHandlers(dispatcher)

	publishAll(t, dispatcher, 3)

	if got := countEvent(metrics, "event|ticket_created|dropped"); got != 2 {
		t.Fatalf("expected 2 dropped events, got %d", got)
	}
}

func TestPublishWorkerRecordsFailures(t *testing.T) {
	metrics := observability.NewMetrics()
	w := NewPublishWorker(&fakeSink{err: errors.New("broker down")}, 4, zap.NewNop(), metrics)
	dispatcher := events.NewInMemoryDispatcher()
	w.RegisterHandlers(dispatcher)

	publishAll(t, dispatcher, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = w.Run(ctx)

	if got := countEvent(metrics, "event|ticket_created|failed"); got != 2 {
		t.Fatalf("expected 2 failed events, got %d", got)
	}
}

func countEvent(metrics *observability.Metrics, name string) int64 {
	for _, counter := range metrics.Snapshot() {
		if counter.Name == name {
			return counter.Value
		}
	}
	return 0
}
