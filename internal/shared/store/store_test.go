package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (n *note) GetID() int64             { return n.ID }
func (n *note) SetID(id int64)           { n.ID = id }
func (n *note) GetCreatedAt() time.Time  { return n.CreatedAt }
func (n *note) SetCreatedAt(t time.Time) { n.CreatedAt = t }
func (n *note) SetUpdatedAt(t time.Time) { n.UpdatedAt = &t }

func TestIDGenerator_SameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	g := &IDGenerator{now: func() time.Time { return fixed }}

	a, b, c := g.Next(), g.Next(), g.Next()
	assert.Equal(t, fixed.UnixMilli(), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
}

func TestIDGenerator_Concurrent(t *testing.T) {
	g := NewIDGenerator()

	const n = 500
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[note](nil)

	created, err := m.Create(ctx, &note{Text: "first"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	got, err := m.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Text)

	updated, err := m.Update(ctx, created.ID, &note{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "edited", updated.Text)

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, created.ID))
	assert.ErrorIs(t, m.Delete(ctx, created.ID), ErrNotFound)

	_, err = m.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Update(ctx, created.ID, &note{Text: "gone"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[note](nil)
	_, err := m.Create(ctx, &note{Text: "a"})
	require.NoError(t, err)

	list, _ := m.List(ctx)
	list[0].Text = "mutated"

	again, _ := m.List(ctx)
	assert.Equal(t, "a", again[0].Text)
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unavailable("list publications", cause)

	assert.True(t, IsUnavailable(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list publications")
}

// fakeCache is an in-process pkg/cache.Cache.
type fakeCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(context.Context, string) error { return nil }
func (f *fakeCache) Ping(context.Context) error                  { return nil }

// countingStore counts List calls to observe cache hits.
type countingStore struct {
	*Memory[note, *note]
	lists int
}

func (c *countingStore) List(ctx context.Context) ([]note, error) {
	c.lists++
	return c.Memory.List(ctx)
}

func TestCached_ListHitAndInvalidate(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Memory: NewMemory[note](nil)}
	fc := newFakeCache()
	s := NewCached[note](backend, fc, "notes", time.Minute)

	_, err := s.Create(ctx, &note{Text: "a"})
	require.NoError(t, err)

	first, err := s.List(ctx)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, 1, backend.lists, "second list must be served from cache")

	created, err := s.Create(ctx, &note{Text: "b"})
	require.NoError(t, err)
	assert.Contains(t, fc.deleted, "notes:list")

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, backend.lists)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Contains(t, fc.deleted, fmt.Sprintf("notes:item:%d", created.ID))
}

func TestCached_CacheErrorsAreNotFatal(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Memory: NewMemory[note](nil)}
	fc := newFakeCache()
	fc.getErr = errors.New("redis down")
	s := NewCached[note](backend, fc, "notes", time.Minute)

	created, err := s.Create(ctx, &note{Text: "a"})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Text)

	_, err = s.GetByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}
