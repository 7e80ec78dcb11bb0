package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Closer flushes buffered log records on shutdown.
type Closer interface {
	Close()
}

// nopCloser backs the synchronous path, where there is nothing to flush.
type nopCloser struct{}

func (nopCloser) Close() {}

// AsyncHandler decouples log emission from the caller: Handle enqueues
// the record onto a bounded channel and a fixed worker set delivers to
// the wrapped handler. When the channel is full the record is dropped
// rather than blocking a request path.
type AsyncHandler struct {
	inner   slog.Handler
	queue   chan slog.Record
	workers *sync.WaitGroup
	dropped *atomic.Int64
}

// NewAsyncHandler wraps inner with a queue of the given capacity drained
// by the given number of workers.
func NewAsyncHandler(inner slog.Handler, queueSize, workers int) *AsyncHandler {
	h := &AsyncHandler{
		inner:   inner,
		queue:   make(chan slog.Record, queueSize),
		workers: &sync.WaitGroup{},
		dropped: &atomic.Int64{},
	}
	for range workers {
		h.workers.Add(1)
		go h.worker()
	}
	return h
}

func (h *AsyncHandler) worker() {
	defer h.workers.Done()
	for rec := range h.queue {
		_ = h.inner.Handle(context.Background(), rec)
	}
}

// Enabled delegates to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle enqueues the record, dropping it when the queue is full.
func (h *AsyncHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	select {
	case h.queue <- rec:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// WithAttrs wraps the derived inner handler. The queue, worker group and
// drop counter stay shared so derived loggers drain through the same
// workers and Close observes all of them.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{
		inner:   h.inner.WithAttrs(attrs),
		queue:   h.queue,
		workers: h.workers,
		dropped: h.dropped,
	}
}

// WithGroup wraps the derived inner handler, sharing state like WithAttrs.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{
		inner:   h.inner.WithGroup(name),
		queue:   h.queue,
		workers: h.workers,
		dropped: h.dropped,
	}
}

// DroppedCount reports how many records were discarded on a full queue.
func (h *AsyncHandler) DroppedCount() int64 {
	return h.dropped.Load()
}

// Close stops accepting records and blocks until the workers have
// delivered everything still queued.
func (h *AsyncHandler) Close() {
	close(h.queue)
	h.workers.Wait()
}
