package dstructs

import "sync"

// FlQueue is a manual-flush queue that is thread-safe.
// A positive limit bounds the queue; pushes beyond the limit are dropped.
type FlQueue[T any] struct {
	mu    sync.Mutex
	limit int
	queue []*T
}

func NewFlQueue[T any](limit int) *FlQueue[T] {
	initialCap := 100
	if limit > 0 && limit < initialCap {
		initialCap = limit
	}
	return &FlQueue[T]{
		limit: limit,
		queue: make([]*T, 0, initialCap),
	}
}

// Push appends r to the queue. It reports whether the element was
// accepted: false means the queue is at its limit and r was dropped.
func (m *FlQueue[T]) Push(r *T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 && len(m.queue) >= m.limit {
		return false
	}
	m.queue = append(m.queue, r)
	return true
}

// Flush returns all queued elements and empties the queue.
func (m *FlQueue[T]) Flush() []*T {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.queue
	m.queue = make([]*T, 0, cap(m.queue))
	return q
}

// Len returns the current queue length.
func (m *FlQueue[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
