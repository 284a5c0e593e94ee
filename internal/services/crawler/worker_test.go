package crawler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestWorkerExecutesSubmittedJob(t *testing.T) {
	worker := NewWorker(arbor.NewLogger())
	worker.Start()
	defer worker.Stop()

	done := make(chan struct{})
	require.NoError(t, worker.Submit(func(ctx context.Context) {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submitted job did not run")
	}
}

func TestWorkerQueueFull(t *testing.T) {
	worker := NewWorker(arbor.NewLogger())
	// Not started, so the single buffer slot fills and stays full

	require.NoError(t, worker.Submit(func(ctx context.Context) {}))
	assert.Error(t, worker.Submit(func(ctx context.Context) {}))
}

func TestWorkerSubmitAfterStop(t *testing.T) {
	worker := NewWorker(arbor.NewLogger())
	worker.Start()
	worker.Stop()

	assert.Error(t, worker.Submit(func(ctx context.Context) {}))
}

func TestWorkerRecoversFromPanickingJob(t *testing.T) {
	worker := NewWorker(arbor.NewLogger())
	worker.Start()
	defer worker.Stop()

	require.NoError(t, worker.Submit(func(ctx context.Context) {
		panic("job exploded")
	}))

	// The worker survives and keeps processing jobs
	done := make(chan struct{})
	require.Eventually(t, func() bool {
		return worker.Submit(func(ctx context.Context) { close(done) }) == nil
	}, time.Second, 5*time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker stopped processing after panic")
	}
}

func TestWorkerStopWaitsForRunningJob(t *testing.T) {
	worker := NewWorker(arbor.NewLogger())
	worker.Start()

	started := make(chan struct{})
	finished := make(chan struct{})
	require.NoError(t, worker.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(finished)
	}))

	<-started
	worker.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop returned before running job observed cancellation")
	}
}
