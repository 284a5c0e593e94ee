package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestCoordinator(t *testing.T, fetcher *fakeFetcher, store *memoryFoodStore) *Coordinator {
	t.Helper()

	logger := arbor.NewLogger()
	service := NewService(fetcher, &fakeExtractor{}, store, testCrawlerConfig([]string{"https://shop.test/"}, 0), logger)

	worker := NewWorker(logger)
	worker.Start()
	t.Cleanup(worker.Stop)

	return NewCoordinator(service, store, worker, logger)
}

func TestCoordinatorRunningInitiallyFalse(t *testing.T) {
	coordinator := newTestCoordinator(t, &fakeFetcher{}, &memoryFoodStore{})
	assert.False(t, coordinator.Running())
}

func TestCoordinatorSingleFlight(t *testing.T) {
	release := make(chan struct{})
	fetcher := &fakeFetcher{block: release}
	coordinator := newTestCoordinator(t, fetcher, &memoryFoodStore{})

	started, err := coordinator.TryStart(context.Background())
	require.NoError(t, err)
	assert.True(t, started)

	require.Eventually(t, coordinator.Running, time.Second, 5*time.Millisecond)

	// A second trigger while the run is active is refused without error
	started, err = coordinator.TryStart(context.Background())
	require.NoError(t, err)
	assert.False(t, started)

	close(release)

	require.Eventually(t, func() bool { return !coordinator.Running() }, time.Second, 5*time.Millisecond)
}

func TestCoordinatorRestartsAfterCompletion(t *testing.T) {
	fetcher := &fakeFetcher{}
	coordinator := newTestCoordinator(t, fetcher, &memoryFoodStore{})

	started, err := coordinator.TryStart(context.Background())
	require.NoError(t, err)
	require.True(t, started)

	require.Eventually(t, func() bool { return !coordinator.Running() }, time.Second, 5*time.Millisecond)

	started, err = coordinator.TryStart(context.Background())
	require.NoError(t, err)
	assert.True(t, started)

	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestCoordinatorReleasesGuardOnClearFailure(t *testing.T) {
	store := &memoryFoodStore{clearErr: errors.New("store unavailable")}
	coordinator := newTestCoordinator(t, &fakeFetcher{}, store)

	started, err := coordinator.TryStart(context.Background())
	assert.False(t, started)
	require.Error(t, err)

	// Guard is released so a later trigger can still run
	assert.False(t, coordinator.Running())
}

func TestCoordinatorGuardHeldDuringEntireRun(t *testing.T) {
	release := make(chan struct{})
	fetcher := &fakeFetcher{block: release}
	store := &memoryFoodStore{}
	coordinator := newTestCoordinator(t, fetcher, store)

	started, err := coordinator.TryStart(context.Background())
	require.NoError(t, err)
	require.True(t, started)

	// Serialized re-triggers while the fetch is blocked all refuse
	for i := 0; i < 5; i++ {
		started, err = coordinator.TryStart(context.Background())
		require.NoError(t, err)
		assert.False(t, started)
	}

	// Only the first trigger reached the fetcher
	require.Eventually(t, func() bool { return fetcher.callCount() == 1 }, time.Second, 5*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return !coordinator.Running() }, time.Second, 5*time.Millisecond)
}
