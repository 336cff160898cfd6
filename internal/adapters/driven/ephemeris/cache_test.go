package ephemeris

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
)

// countingPort answers body*10 degrees and counts backend calls.
type countingPort struct {
	calls   atomic.Int64
	err     error
	release chan struct{}
}

func (p *countingPort) PositionOf(_ context.Context, body domain.Body, _ time.Time) (domain.BodyPosition, error) {
	p.calls.Add(1)
	if p.release != nil {
		<-p.release
	}
	if p.err != nil {
		return domain.BodyPosition{}, p.err
	}
	return domain.BodyPosition{Body: body, Longitude: float64(body) * 10}, nil
}

func (p *countingPort) Name() string { return "counting" }

func (p *countingPort) Range() (time.Time, time.Time) {
	return time.Time{}, time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)
}

var cacheInstant = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestCache_HitsAfterFirstLookup(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 16)

	first, err := cache.PositionOf(context.Background(), domain.Mars, cacheInstant)
	require.NoError(t, err)
	second, err := cache.PositionOf(context.Background(), domain.Mars, cacheInstant)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), next.calls.Load())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestCache_KeysByBodyAndInstant(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 16)
	ctx := context.Background()

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Moon, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant.Add(time.Nanosecond))

	assert.Equal(t, int64(3), next.calls.Load())
}

func TestCache_SameInstantInOtherZoneHits(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 16)
	ctx := context.Background()

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant.In(time.FixedZone("IST", 19800)))

	assert.Equal(t, int64(1), next.calls.Load())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 2)
	ctx := context.Background()

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Moon, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant) // Sun becomes most recent
	_, _ = cache.PositionOf(ctx, domain.Mars, cacheInstant)

	require.Equal(t, int64(3), next.calls.Load())
	assert.Equal(t, 2, cache.Stats().Entries)

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	assert.Equal(t, int64(3), next.calls.Load(), "Sun should still be cached")

	_, _ = cache.PositionOf(ctx, domain.Moon, cacheInstant)
	assert.Equal(t, int64(4), next.calls.Load(), "Moon should have been evicted")
}

func TestCache_DoesNotCacheErrors(t *testing.T) {
	next := &countingPort{err: domain.ErrEphemerisUnavailable}
	cache := NewCache(next, 4)
	ctx := context.Background()

	_, err := cache.PositionOf(ctx, domain.Sun, cacheInstant)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
	_, err = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)

	assert.Equal(t, int64(2), next.calls.Load())
	assert.Equal(t, 0, cache.Stats().Entries)
}

func TestCache_CollapsesConcurrentMisses(t *testing.T) {
	next := &countingPort{release: make(chan struct{})}
	cache := NewCache(next, 4)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]domain.BodyPosition, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pos, err := cache.PositionOf(context.Background(), domain.Jupiter, cacheInstant)
			assert.NoError(t, err)
			results[i] = pos
		}()
	}

	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(next.release)
	wg.Wait()

	assert.Equal(t, int64(1), next.calls.Load())
	for _, pos := range results {
		assert.InDelta(t, 40.0, pos.Longitude, 1e-9)
	}
}

func TestCache_CancelledContext(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.PositionOf(ctx, domain.Sun, cacheInstant)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, next.calls.Load())
}

func TestCache_DelegatesNameAndRange(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 0)

	_, to := cache.Range()
	assert.Equal(t, "counting", cache.Name())
	assert.Equal(t, 3000, to.Year())
}

// gatedPort blocks each lookup until release is closed and fails with the
// context error it was handed.
type gatedPort struct {
	countingPort
	started chan struct{}
}

func (p *gatedPort) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	p.started <- struct{}{}
	pos, err := p.countingPort.PositionOf(ctx, body, at)
	if ctx.Err() != nil {
		return domain.BodyPosition{}, ctx.Err()
	}
	return pos, err
}

func TestCache_PurgeDropsEntries(t *testing.T) {
	next := &countingPort{}
	cache := NewCache(next, 4)
	ctx := context.Background()

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	_, _ = cache.PositionOf(ctx, domain.Moon, cacheInstant)
	require.Equal(t, 2, cache.Stats().Entries)

	cache.Purge()
	assert.Equal(t, 0, cache.Stats().Entries)

	_, _ = cache.PositionOf(ctx, domain.Sun, cacheInstant)
	assert.Equal(t, int64(3), next.calls.Load())
}

func TestCache_PurgeDuringLookupSkipsStore(t *testing.T) {
	next := &gatedPort{
		countingPort: countingPort{release: make(chan struct{})},
		started:      make(chan struct{}, 1),
	}
	cache := NewCache(next, 4)

	done := make(chan error, 1)
	go func() {
		_, err := cache.PositionOf(context.Background(), domain.Sun, cacheInstant)
		done <- err
	}()

	<-next.started
	cache.Purge()
	close(next.release)
	require.NoError(t, <-done)

	assert.Equal(t, 0, cache.Stats().Entries)
}

func TestCache_SharedLookupSurvivesFirstCallerCancel(t *testing.T) {
	next := &gatedPort{
		countingPort: countingPort{release: make(chan struct{})},
		started:      make(chan struct{}, 1),
	}
	cache := NewCache(next, 4)

	firstCtx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cache.PositionOf(firstCtx, domain.Venus, cacheInstant)
		first <- err
	}()
	<-next.started

	type result struct {
		pos domain.BodyPosition
		err error
	}
	second := make(chan result, 1)
	go func() {
		pos, err := cache.PositionOf(context.Background(), domain.Venus, cacheInstant)
		second <- result{pos, err}
	}()

	require.Eventually(t, func() bool { return cache.Stats().Misses == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(next.release)
	got := <-second
	require.NoError(t, got.err)
	assert.InDelta(t, 50.0, got.pos.Longitude, 1e-9)
	assert.Equal(t, int64(1), next.calls.Load())
	assert.Equal(t, 1, cache.Stats().Entries)
}
