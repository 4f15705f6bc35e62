package status

import (
	"cmp"
	"slices"
	"sync"
)

// MetricMap is a named set of metric cells of type T
// Systems register once at construction and keep the pointer; the tick then writes lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, allocating a zero cell on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	cell := m.cells[key]
	m.mu.RUnlock()
	if cell != nil {
		return cell
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cell = m.cells[key]; cell == nil {
		cell = new(T)
		m.cells[key] = cell
	}
	return cell
}

// Has reports whether key was registered
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[key] != nil
}

type entry[T any] struct {
	key  string
	cell *T
}

// Range visits every cell in key order
// The set of cells is captured up front; fn runs without the lock held
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	m.mu.RLock()
	entries := make([]entry[T], 0, len(m.cells))
	for k, c := range m.cells {
		entries = append(entries, entry[T]{k, c})
	}
	m.mu.RUnlock()

	slices.SortFunc(entries, func(a, b entry[T]) int { return cmp.Compare(a.key, b.key) })
	for _, e := range entries {
		fn(e.key, e.cell)
	}
}

// Count returns the number of registered cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
