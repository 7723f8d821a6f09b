package metrics

import "sync"

// Snapshot captures current in-memory counters. Mutation counters are
// keyed by entity kind.
type Snapshot struct {
	Created map[Kind]uint64 `json:"created"`
	Updated map[Kind]uint64 `json:"updated"`
	Deleted map[Kind]uint64 `json:"deleted"`

	UserCacheHits   uint64 `json:"user_cache_hits"`
	UserCacheMisses uint64 `json:"user_cache_misses"`
}

// InMemoryRecorder stores counters in memory. Suitable for the /metrics
// endpoint and for tests.
type InMemoryRecorder struct {
	mu sync.Mutex

	created map[Kind]uint64
	updated map[Kind]uint64
	deleted map[Kind]uint64

	userCacheHits   uint64
	userCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		created: make(map[Kind]uint64),
		updated: make(map[Kind]uint64),
		deleted: make(map[Kind]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Created:         copyCounts(m.created),
		Updated:         copyCounts(m.updated),
		Deleted:         copyCounts(m.deleted),
		UserCacheHits:   m.userCacheHits,
		UserCacheMisses: m.userCacheMisses,
	}
}

// IncCreated increments the created counter for kind.
func (m *InMemoryRecorder) IncCreated(kind Kind) {
	m.AddCreated(kind, 1)
}

// AddCreated adds n to the created counter for kind.
func (m *InMemoryRecorder) AddCreated(kind Kind, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[kind] += uint64(n)
}

// IncUpdated increments the updated counter for kind.
func (m *InMemoryRecorder) IncUpdated(kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated[kind]++
}

// IncDeleted increments the deleted counter for kind.
func (m *InMemoryRecorder) IncDeleted(kind Kind) {
	m.AddDeleted(kind, 1)
}

// AddDeleted adds n to the deleted counter for kind.
func (m *InMemoryRecorder) AddDeleted(kind Kind, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted[kind] += uint64(n)
}

// IncUserCacheHit increments the user cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userCacheHits++
}

// IncUserCacheMiss increments the user cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userCacheMisses++
}

func copyCounts(src map[Kind]uint64) map[Kind]uint64 {
	dst := make(map[Kind]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
