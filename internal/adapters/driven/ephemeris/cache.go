package ephemeris

import (
	"container/list"
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/jyotish-cli/internal/core/domain"
	"github.com/custodia-labs/jyotish-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EphemerisPort = (*Cache)(nil)

// Cache memoises position lookups of another backend in a bounded LRU.
// Concurrent misses for the same (body, instant) share one backend call,
// which runs detached from the cancellation of whichever caller started it.
// Errors are never cached. Purge drops every entry when the backend's data
// changes.
//
// Safe for concurrent use.
type Cache struct {
	next     driven.EphemerisPort
	capacity int

	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
	gen     uint64
	flight  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	key      string
	position domain.BodyPosition
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// NewCache wraps next with an LRU of at most capacity entries.
// A capacity below one is raised to one.
func NewCache(next driven.EphemerisPort, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		next:     next,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Name reports the wrapped backend.
func (c *Cache) Name() string {
	return c.next.Name()
}

// Range reports the wrapped backend's range.
func (c *Cache) Range() (from, to time.Time) {
	return c.next.Range()
}

// PositionOf answers from the cache or the wrapped backend.
func (c *Cache) PositionOf(ctx context.Context, body domain.Body, at time.Time) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}

	key := cacheKey(body, at)
	if pos, ok := c.get(key); ok {
		c.hits.Add(1)
		return pos, nil
	}
	c.misses.Add(1)

	ch := c.flight.DoChan(key, func() (any, error) {
		if pos, ok := c.get(key); ok {
			return pos, nil
		}
		gen := c.generation()
		pos, err := c.next.PositionOf(context.WithoutCancel(ctx), body, at)
		if err != nil {
			return nil, err
		}
		c.put(key, pos, gen)
		return pos, nil
	})

	select {
	case <-ctx.Done():
		return domain.BodyPosition{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.BodyPosition{}, res.Err
		}
		return res.Val.(domain.BodyPosition), nil
	}
}

// Purge drops every entry. Lookups already in flight when Purge runs are
// returned to their callers but not stored.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	clear(c.entries)
	c.lru.Init()
}

func (c *Cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Stats returns hit and miss counters and the current entry count.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	n := c.lru.Len()
	c.mu.Unlock()
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: n}
}

func (c *Cache) get(key string) (domain.BodyPosition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return domain.BodyPosition{}, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*cacheEntry).position, true
}

func (c *Cache) put(key string, pos domain.BodyPosition, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).position = pos
		c.lru.MoveToFront(el)
		return
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, position: pos})
	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Instants are keyed at full precision so that distinct lookups never share
// an entry.
func cacheKey(body domain.Body, at time.Time) string {
	return strconv.Itoa(int(body)) + "@" + at.UTC().Format(time.RFC3339Nano)
}
