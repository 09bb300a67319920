package search

import (
	"sync"
	"testing"
)

func TestSequencer_Monotonic(t *testing.T) {
	var s Sequencer
	a := s.Next()
	b := s.Next()
	if b <= a {
		t.Fatalf("sequence not increasing: %d then %d", a, b)
	}
}

func TestSequencer_StaleResponseDiscarded(t *testing.T) {
	var s Sequencer

	first := s.Next()
	second := s.Next()

	// The slower first response arrives after the second was issued.
	if s.Latest(first) {
		t.Error("stale sequence must not be latest")
	}
	if !s.Latest(second) {
		t.Error("newest sequence must be latest")
	}
}

func TestSequencer_Concurrent(t *testing.T) {
	var s Sequencer
	var wg sync.WaitGroup
	seen := make(map[uint64]bool)
	var mu sync.Mutex

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := s.Next()
			mu.Lock()
			if seen[seq] {
				t.Errorf("duplicate sequence %d", seq)
			}
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if !s.Latest(100) {
		t.Error("after 100 issues the latest must be 100")
	}
}
