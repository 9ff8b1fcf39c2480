package store

import (
	"context"
	"sync"
	"time"
)

// Memory is the process-local backend. Records live in insertion order and
// vanish on restart.
//
// PT lets the store call Record methods on *T while handing out T values.
type Memory[T any, PT interface {
	*T
	Record
}] struct {
	mu      sync.RWMutex
	records []T
	ids     *IDGenerator
	now     func() time.Time
}

func NewMemory[T any, PT interface {
	*T
	Record
}](ids *IDGenerator) *Memory[T, PT] {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Memory[T, PT]{ids: ids, now: time.Now}
}

func (m *Memory[T, PT]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory[T, PT]) GetByID(_ context.Context, id int64) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := m.records[i]
	return &rec, nil
}

func (m *Memory[T, PT]) Create(_ context.Context, rec *T) (*T, error) {
	stored := *rec
	PT(&stored).SetID(m.ids.Next())
	PT(&stored).SetCreatedAt(m.now().UTC())

	m.mu.Lock()
	m.records = append(m.records, stored)
	m.mu.Unlock()

	return &stored, nil
}

func (m *Memory[T, PT]) Update(_ context.Context, id int64, rec *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	updated := *rec
	PT(&updated).SetID(id)
	PT(&updated).SetCreatedAt(PT(&m.records[i]).GetCreatedAt())
	PT(&updated).SetUpdatedAt(m.now().UTC())
	m.records[i] = updated

	return &updated, nil
}

func (m *Memory[T, PT]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

// Len is used by the scheduler to report outage-era records.
func (m *Memory[T, PT]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// indexOf expects the caller to hold mu.
func (m *Memory[T, PT]) indexOf(id int64) int {
	for i := range m.records {
		if PT(&m.records[i]).GetID() == id {
			return i
		}
	}
	return -1
}
