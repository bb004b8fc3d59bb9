package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/prospect/pkg/metrics"
)

func newTestQueue(capacity int) *InMemoryQueue {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	return NewInMemoryQueue(WithCapacity(capacity), WithMetrics(m))
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := newTestQueue(2)
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	ran := false
	if !q.Enqueue(ctx, func() { ran = true }) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	job := <-q.Dequeue()
	job()
	if !ran {
		t.Error("expected dequeued job to be the enqueued one")
	}
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := newTestQueue(2)
	ctx := context.Background()
	noop := func() {}

	if !q.Enqueue(ctx, noop) || !q.Enqueue(ctx, noop) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, noop) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := newTestQueue(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, func() {}) {
		t.Error("expected enqueue to fail with a cancelled context")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := newTestQueue(4)
	ctx := context.Background()

	if !q.Enqueue(ctx, func() {}) {
		t.Fatal("expected enqueue to succeed")
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, func() {}) {
		t.Error("expected enqueue to fail after close")
	}

	// Queued work is still delivered, then the channel closes.
	n := 0
	for range q.Dequeue() {
		n++
	}
	if n != 1 {
		t.Errorf("expected 1 drained job, got %d", n)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	const producers, perProducer = 10, 50
	q := newTestQueue(producers * perProducer)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				if !q.Enqueue(ctx, func() {}) {
					t.Error("unexpected enqueue failure")
				}
			}
		}()
	}
	wg.Wait()

	if l := q.Len(); l != producers*perProducer {
		t.Errorf("expected length %d, got %d", producers*perProducer, l)
	}
}
