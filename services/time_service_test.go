package services

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestSessionIDGenerator_UsesMillisecondClock(t *testing.T) {
	fixed := time.UnixMilli(1700000000123)
	gen := NewSessionIDGenerator(func() time.Time { return fixed })

	if got := gen.Next(); got != "1700000000123" {
		t.Errorf("expected 1700000000123, got %s", got)
	}
}

func TestSessionIDGenerator_StrictlyIncreasingOnSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewSessionIDGenerator(func() time.Time { return fixed })

	a, _ := strconv.ParseInt(gen.Next(), 10, 64)
	b, _ := strconv.ParseInt(gen.Next(), 10, 64)
	if b <= a {
		t.Errorf("expected %d > %d", b, a)
	}
}

func TestSessionIDGenerator_UniqueUnderConcurrency(t *testing.T) {
	gen := NewSessionIDGenerator(nil)

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 100 {
		t.Errorf("expected 100 unique ids, got %d", len(seen))
	}
}
