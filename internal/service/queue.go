package service

import (
	"context"
	"fmt"
	"sync"

	apperrors "notegram/internal/errors"
	"notegram/internal/metrics"
	"notegram/internal/models"

	"github.com/sirupsen/logrus"
)

// MessageProcessor runs one message through the full pipeline.
type MessageProcessor interface {
	Process(ctx context.Context, msg *models.IncomingMessage)
}

// DispatchQueue serializes message processing. Enqueue appends to an
// unbounded FIFO buffer and starts a drain goroutine when none is active;
// the drain loop processes the oldest message to full completion (fetch,
// format, persist, acknowledge) before touching the next, and exits when
// the buffer empties. At most one message is ever in flight.
type DispatchQueue struct {
	processor MessageProcessor
	logger    *logrus.Logger

	mu       sync.Mutex
	buffer   []*models.IncomingMessage
	draining bool
	wg       sync.WaitGroup
}

// NewDispatchQueue creates an idle queue bound to the processor.
func NewDispatchQueue(processor MessageProcessor, logger *logrus.Logger) *DispatchQueue {
	return &DispatchQueue{
		processor: processor,
		logger:    logger,
	}
}

// Enqueue appends the message and wakes the drain loop if it is not
// running. Arrival order is processing order.
func (q *DispatchQueue) Enqueue(ctx context.Context, msg *models.IncomingMessage) {
	q.mu.Lock()
	q.buffer = append(q.buffer, msg)
	metrics.SetGauge("queue_depth", float64(len(q.buffer)), "Messages waiting in the dispatch queue")

	if !q.draining {
		q.draining = true
		q.wg.Add(1)
		go q.drain(ctx)
	}
	q.mu.Unlock()
}

// Wait blocks until the current drain loop has finished and the buffer is
// empty. Used during shutdown and in tests.
func (q *DispatchQueue) Wait() {
	q.wg.Wait()
}

// Depth returns the number of buffered, not-yet-processed messages.
func (q *DispatchQueue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffer)
}

func (q *DispatchQueue) drain(ctx context.Context) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		if len(q.buffer) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		msg := q.buffer[0]
		q.buffer = q.buffer[1:]
		metrics.SetGauge("queue_depth", float64(len(q.buffer)), "Messages waiting in the dispatch queue")
		q.mu.Unlock()

		q.processOne(ctx, msg)
	}
}

// processOne contains per-message failures so the loop always advances to
// the next buffered message. Loop continuation is explicit here rather
// than delegated to an outer catch-all.
func (q *DispatchQueue) processOne(ctx context.Context, msg *models.IncomingMessage) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncrementCounter("processing_panics", "Panics recovered inside the drain loop")
			err := apperrors.New(apperrors.ErrCodeInternalError, fmt.Sprintf("recovered panic: %v", r))
			q.logger.WithError(err).Error("Recovered from panic while processing message")
		}
	}()

	q.processor.Process(ctx, msg)
}
