package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// item is one cached value plus its LRU bookkeeping.
type item[V any] struct {
	expiresAt time.Time // zero means never expires
	value     V
	key       string
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is an in-process cache with TTL expiration and optional LRU
// eviction when a maximum entry count is set. Lookups are O(1) through
// a map, and recency ordering is a doubly linked list with the most
// recently used entries at the front.
type Memory[V any] struct {
	items   map[string]*list.Element
	recency *list.List
	opts    *memoryOptions
	onEvict func(key string, value V)
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewMemory creates an in-memory cache. A background sweeper removes
// expired entries on the configured interval until Close is called.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		items:   make(map[string]*list.Element),
		recency: list.New(),
		opts:    o,
		done:    make(chan struct{}),
	}

	if o.sweepInterval > 0 {
		go m.sweeper()
	}

	return m
}

// SetEvictCallback registers a function called whenever an entry
// leaves the cache, whether by LRU eviction, expiry, Delete, or Clear.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get retrieves a value and marks it recently used. Missing or expired
// keys return ErrNotFound.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V

	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	it := elem.Value.(*item[V])
	if it.expired(time.Now()) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	m.recency.MoveToFront(elem)
	return it.value, nil
}

// Set stores a value. Zero TTL uses the default, negative never
// expires. When the cache is full the least recently used entry makes
// room.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		it := elem.Value.(*item[V])
		it.value = value
		it.expiresAt = expiresAt
		m.recency.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.recency.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[key] = m.recency.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Delete removes a key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Has reports whether a key exists and has not expired.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if elem.Value.(*item[V]).expired(time.Now()) {
		m.remove(elem)
		return false, nil
	}
	return true, nil
}

// Clear removes every entry, reporting each to the eviction callback.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			it := elem.Value.(*item[V])
			m.onEvict(it.key, it.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.recency.Init()
	return nil
}

// Close stops the sweeper and rejects further writes. It is
// idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *Memory[V]) sweeper() {
	ticker := time.NewTicker(m.opts.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep walks the recency list from the back, where entries are both
// coldest and likeliest to be stale.
func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.recency.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*item[V]).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove drops an element and fires the eviction callback. The caller
// holds the mutex.
func (m *Memory[V]) remove(elem *list.Element) {
	m.recency.Remove(elem)
	it := elem.Value.(*item[V])
	delete(m.items, it.key)

	if m.onEvict != nil {
		m.onEvict(it.key, it.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
