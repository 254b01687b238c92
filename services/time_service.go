package services

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// SessionIDGenerator mints session ids from the millisecond clock. Ids
// strictly increase within a process, also when two calls land in the same
// millisecond.
type SessionIDGenerator struct {
	now  Clock
	last atomic.Int64
}

func NewSessionIDGenerator(now Clock) *SessionIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &SessionIDGenerator{now: now}
}

// Next returns a fresh session id.
func (g *SessionIDGenerator) Next() string {
	for {
		prev := g.last.Load()
		ms := g.now().UnixMilli()
		if ms <= prev {
			ms = prev + 1
		}
		if g.last.CompareAndSwap(prev, ms) {
			return strconv.FormatInt(ms, 10)
		}
	}
}
