package jobs

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDispatchesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make([]Job, 0, 2)
	done := make(chan struct{}, 2)

	q := NewQueue("maintenance", func(ctx context.Context, job Job) error {
		mu.Lock()
		seen = append(seen, job)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, Config{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "catalog.refresh"}))
	require.NoError(t, q.Enqueue(Job{Type: "uploads.purge", Payload: map[string]string{"max_age": "720h"}}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, "catalog.refresh", seen[0].Type)
	assert.NotEmpty(t, seen[0].ID)
	assert.False(t, seen[0].EnqueuedAt.IsZero())
	assert.Equal(t, "720h", seen[1].Payload["max_age"])
}

func TestQueueRetriesFailedJob(t *testing.T) {
	attempts := make(chan int, 4)

	q := NewQueue("maintenance", func(ctx context.Context, job Job) error {
		attempts <- job.Attempt
		if job.Attempt == 0 {
			return fmt.Errorf("transient")
		}
		return nil
	}, Config{Workers: 1, MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "catalog.refresh"}))

	var got []int
	for len(got) < 2 {
		select {
		case a := <-attempts:
			got = append(got, a)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, attempts so far: %v", got)
		}
	}
	assert.Equal(t, []int{0, 1}, got)
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("maintenance", func(ctx context.Context, job Job) error { return nil }, Config{})
	err := q.Enqueue(Job{Type: "catalog.refresh"})
	require.Error(t, err)
}
