package store

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out strictly increasing ids seeded from the wall clock in
// milliseconds. Two calls in the same millisecond get consecutive values.
type IDGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() int64 {
	for {
		last := g.last.Load()
		next := max(g.now().UnixMilli(), last+1)
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
