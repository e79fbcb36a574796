package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests               map[string]uint64 // keyed by "METHOD route status"
	RequestDurationCount   uint64
	RequestDurationTotalNs int64
	UsersCreated           uint64
	UsersRejected          map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                     sync.Mutex
	requests               map[string]uint64
	usersRejected          map[string]uint64
	requestDurationCount   uint64
	requestDurationTotalNs int64
	usersCreated           uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		requests:      make(map[string]uint64),
		usersRejected: make(map[string]uint64),
	}
}

// RequestKey builds the Snapshot.Requests key for a request.
func RequestKey(route, method string, status int) string {
	return method + " " + route + " " + statusLabel(status)
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	requests := make(map[string]uint64, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}
	rejected := make(map[string]uint64, len(m.usersRejected))
	for k, v := range m.usersRejected {
		rejected[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		Requests:               requests,
		RequestDurationCount:   atomic.LoadUint64(&m.requestDurationCount),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
		UsersCreated:           atomic.LoadUint64(&m.usersCreated),
		UsersRejected:          rejected,
	}
}

// ObserveRequest counts the request and records its duration.
func (m *InMemoryRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.mu.Lock()
	m.requests[RequestKey(route, method, status)]++
	m.mu.Unlock()

	atomic.AddUint64(&m.requestDurationCount, 1)
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserRejected increments the rejected counter for reason.
func (m *InMemoryRecorder) IncUserRejected(reason string) {
	m.mu.Lock()
	m.usersRejected[reason]++
	m.mu.Unlock()
}
