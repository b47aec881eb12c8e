package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"estatedash/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// PropertyQueue buffers batches of properties (with their nested sales and
// renovations) between the seed generator and the batch processors.
type PropertyQueue struct {
	items    chan []*models.Property
	done     chan struct{}
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.Property) error
}

func NewPropertyQueue(bufferSize int, logger *logrus.Logger) *PropertyQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &PropertyQueue{
		items:  make(chan []*models.Property, bufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Push adds a batch without blocking; a full buffer is reported to the
// producer instead of deadlocking it. The lock is held across the send so
// Close cannot slip in between the closed check and the enqueue; every
// accepted batch is therefore enqueued before the done channel closes and
// is seen by the consumers' drain pass.
func (q *PropertyQueue) Push(batch []*models.Property) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a handler invoked for every consumed batch. Handlers
// block the consuming goroutine, so each handler runs on at most one batch
// at a time per consumer.
func (q *PropertyQueue) Subscribe(handler func([]*models.Property) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Consume drains the queue until it is closed and empty, dispatching each
// batch to the subscribed handlers. Intended to run on its own goroutine.
func (q *PropertyQueue) Consume() {
	for {
		select {
		case batch, ok := <-q.items:
			if !ok {
				return
			}
			q.dispatch(batch)
		case <-q.done:
			// Drain remaining batches before stopping
			for {
				select {
				case batch, ok := <-q.items:
					if !ok {
						return
					}
					q.dispatch(batch)
				default:
					return
				}
			}
		}
	}
}

func (q *PropertyQueue) dispatch(batch []*models.Property) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new batches from being added.
func (q *PropertyQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	return nil
}

// Len returns the current number of buffered batches.
func (q *PropertyQueue) Len() int {
	return len(q.items)
}

func (q *PropertyQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
