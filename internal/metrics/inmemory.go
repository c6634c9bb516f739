package metrics

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Registrations            map[string]uint64
	Logins                   map[string]uint64
	ChatRoutes               map[string]uint64
	NewsFetches              map[string]uint64
	NewsFetchDurationCount   uint64
	NewsFetchDurationTotalNs int64
	HeadlineCacheHits        uint64
	HeadlineCacheMisses      uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	mu            sync.Mutex
	registrations map[string]uint64
	logins        map[string]uint64
	chatRoutes    map[string]uint64
	newsFetches   map[string]uint64

	newsFetchDurationCount   uint64
	newsFetchDurationTotalNs int64
	headlineCacheHits        uint64
	headlineCacheMisses      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		registrations: make(map[string]uint64),
		logins:        make(map[string]uint64),
		chatRoutes:    make(map[string]uint64),
		newsFetches:   make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Registrations:            maps.Clone(m.registrations),
		Logins:                   maps.Clone(m.logins),
		ChatRoutes:               maps.Clone(m.chatRoutes),
		NewsFetches:              maps.Clone(m.newsFetches),
		NewsFetchDurationCount:   atomic.LoadUint64(&m.newsFetchDurationCount),
		NewsFetchDurationTotalNs: atomic.LoadInt64(&m.newsFetchDurationTotalNs),
		HeadlineCacheHits:        atomic.LoadUint64(&m.headlineCacheHits),
		HeadlineCacheMisses:      atomic.LoadUint64(&m.headlineCacheMisses),
	}
}

func (m *InMemoryRecorder) inc(counter map[string]uint64, label string) {
	m.mu.Lock()
	counter[label]++
	m.mu.Unlock()
}

// IncRegistration increments the registration counter for status.
func (m *InMemoryRecorder) IncRegistration(status string) {
	m.inc(m.registrations, status)
}

// IncLogin increments the login counter for status.
func (m *InMemoryRecorder) IncLogin(status string) {
	m.inc(m.logins, status)
}

// IncChatRoute increments the counter for a chat routing decision.
func (m *InMemoryRecorder) IncChatRoute(route string) {
	m.inc(m.chatRoutes, route)
}

// IncNewsFetch increments the news fetch counter for outcome.
func (m *InMemoryRecorder) IncNewsFetch(outcome string) {
	m.inc(m.newsFetches, outcome)
}

// ObserveNewsFetchDuration records news fetch duration.
func (m *InMemoryRecorder) ObserveNewsFetchDuration(duration time.Duration) {
	atomic.AddUint64(&m.newsFetchDurationCount, 1)
	atomic.AddInt64(&m.newsFetchDurationTotalNs, duration.Nanoseconds())
}

// IncHeadlineCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncHeadlineCacheHit() {
	atomic.AddUint64(&m.headlineCacheHits, 1)
}

// IncHeadlineCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncHeadlineCacheMiss() {
	atomic.AddUint64(&m.headlineCacheMisses, 1)
}
