// Package cache provides a bounded in-memory memo cache for shortlist results.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/shortlist"
	"github.com/nonianfoix/sweet-sixteen/pkg/metrics"
)

// Memo caches computed shortlist results keyed by recruit, offer set and week.
type Memo interface {
	// Get returns the cached result for key, if present.
	Get(ctx context.Context, key string) (shortlist.Result, bool)

	// Put stores the result under key, evicting the least recently added
	// entry when the cache is full.
	Put(ctx context.Context, key string, result shortlist.Result)

	// Invalidate removes a single key. Used when a recruit's offers change
	// mid-week and the memoized shortlist is stale.
	Invalidate(ctx context.Context, key string)

	Size() int64
}

// node represents a single entry in the eviction list.
type node struct {
	key    string
	result shortlist.Result
	next   *node
}

// reset clears the node state for reuse
func (n *node) reset() {
	n.key = ""
	n.result = shortlist.Result{}
	n.next = nil
}

// inMemoryMemo implements Memo using a map plus a linked list with LIFO eviction.
// For bounded mode (maxSize > 0): linked list with LIFO eviction and sync.Pool for nodes
// For unbounded mode (maxSize <= 0): map only (no eviction, no size limit)
type inMemoryMemo struct {
	mu       sync.RWMutex
	entries  map[string]*node
	head     *node        // head of linked list (most recently added)
	maxSize  int          // maximum number of entries to keep (0 or negative = UNBOUNDED)
	size     atomic.Int64 // current number of entries (atomic)
	nodePool sync.Pool
}

// NewInMemoryMemo creates a new in-memory memo cache with configuration options.
func NewInMemoryMemo(opts ...Option) Memo {
	m := &inMemoryMemo{
		maxSize: 10000, // default max size
	}

	for _, opt := range opts {
		opt(m)
	}

	m.entries = make(map[string]*node)

	if m.maxSize > 0 {
		m.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	}

	return m
}

// Get returns the cached result for key, if present.
func (m *inMemoryMemo) Get(ctx context.Context, key string) (shortlist.Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, exists := m.entries[key]
	if !exists {
		metrics.RecordCacheMiss()
		return shortlist.Result{}, false
	}
	metrics.RecordCacheHit()
	if n == nil {
		// unbounded mode stores results directly in the map via sentinel nodes,
		// so a nil node never happens in practice; guard anyway
		return shortlist.Result{}, false
	}
	return n.result, true
}

// Put stores the result under key, evicting when the cache is full.
func (m *inMemoryMemo) Put(ctx context.Context, key string, result shortlist.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Overwrite in place when the key already exists
	if existing, exists := m.entries[key]; exists && existing != nil {
		existing.result = result
		return
	}

	if m.maxSize > 0 {
		// BOUNDED MODE: linked list with LIFO eviction
		if len(m.entries) >= m.maxSize {
			m.evictLIFO()
		}

		n := m.nodePool.Get().(*node)
		n.key = key
		n.result = result
		n.next = m.head

		m.head = n
		m.entries[key] = n
	} else {
		// UNBOUNDED MODE: map only, no eviction list
		n := &node{key: key, result: result}
		m.entries[key] = n
	}
	m.size.Add(1)
	metrics.UpdateCacheSize(int(m.size.Load()))
}

// Invalidate removes a single key from the cache.
func (m *inMemoryMemo) Invalidate(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, exists := m.entries[key]
	if !exists {
		return
	}
	delete(m.entries, key)

	if m.maxSize > 0 && n != nil {
		// Remove from linked list
		if m.head == n {
			m.head = n.next
		} else {
			current := m.head
			for current != nil && current.next != n {
				current = current.next
			}
			if current != nil {
				current.next = n.next
			}
		}
		n.reset()
		m.nodePool.Put(n)
	}

	m.size.Add(-1)
	metrics.UpdateCacheSize(int(m.size.Load()))
}

// evictLIFO removes the least recently added entry (tail of list) from the map.
// Must be called with m.mu.Lock() held.
func (m *inMemoryMemo) evictLIFO() {
	if len(m.entries) == 0 || m.head == nil {
		return
	}

	var prev *node
	current := m.head

	// If there's only one node, remove it
	if current.next == nil {
		delete(m.entries, current.key)
		current.reset()
		m.nodePool.Put(current)
		m.head = nil
		m.size.Add(-1)
		return
	}

	// Find the second-to-last node
	for current.next != nil {
		prev = current
		current = current.next
	}

	// Remove the last node (tail)
	if prev != nil {
		prev.next = nil
		delete(m.entries, current.key)
		current.reset()
		m.nodePool.Put(current)
		m.size.Add(-1)
	}
}

// Size returns the current number of cached entries.
func (m *inMemoryMemo) Size() int64 {
	return m.size.Load()
}
