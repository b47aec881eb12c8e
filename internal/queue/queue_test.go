package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatedash/server/internal/models"
)

func testBatch(addresses ...string) []*models.Property {
	batch := make([]*models.Property, 0, len(addresses))
	for _, address := range addresses {
		batch = append(batch, &models.Property{Address: address})
	}
	return batch
}

func TestPushAndLen(t *testing.T) {
	q := NewPropertyQueue(2, logrus.New())

	require.NoError(t, q.Push(testBatch("100 Pine St")))
	require.NoError(t, q.Push(testBatch("200 Maple Ave")))
	assert.Equal(t, 2, q.Len())

	// Buffer is full; push must not block
	assert.ErrorIs(t, q.Push(testBatch("300 Cedar Blvd")), ErrQueueFull)
}

func TestPushAfterClose(t *testing.T) {
	q := NewPropertyQueue(2, logrus.New())

	require.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
	assert.ErrorIs(t, q.Push(testBatch("100 Pine St")), ErrQueueClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	q := NewPropertyQueue(2, logrus.New())

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
}

func TestConsumeDispatchesToHandlers(t *testing.T) {
	q := NewPropertyQueue(10, logrus.New())

	var mu sync.Mutex
	var received [][]*models.Property
	q.Subscribe(func(batch []*models.Property) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, batch)
		return nil
	})

	require.NoError(t, q.Push(testBatch("100 Pine St", "200 Maple Ave")))
	require.NoError(t, q.Push(testBatch("300 Cedar Blvd")))

	done := make(chan struct{})
	go func() {
		q.Consume()
		close(done)
	}()

	// Consume drains buffered batches before honoring the close
	require.NoError(t, q.Close())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after close")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Len(t, received[0], 2)
	assert.Len(t, received[1], 1)
}

func TestConcurrentPushAndCloseDeliversAcceptedBatches(t *testing.T) {
	q := NewPropertyQueue(64, logrus.New())

	var accepted, delivered int64
	q.Subscribe(func(batch []*models.Property) error {
		atomic.AddInt64(&delivered, 1)
		return nil
	})

	consumerDone := make(chan struct{})
	go func() {
		q.Consume()
		close(consumerDone)
	}()

	var producers sync.WaitGroup
	for i := 0; i < 8; i++ {
		producers.Add(1)
		go func() {
			defer producers.Done()
			for j := 0; j < 50; j++ {
				if err := q.Push(testBatch("100 Pine St")); err == nil {
					atomic.AddInt64(&accepted, 1)
				}
			}
		}()
	}

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, q.Close())
	producers.Wait()

	select {
	case <-consumerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after close")
	}

	// Every batch accepted before the close must reach a handler
	assert.Equal(t, atomic.LoadInt64(&accepted), atomic.LoadInt64(&delivered))
}
