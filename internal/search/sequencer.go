// Package search guards debounced autocomplete against out-of-order
// responses: every issued query is tagged with a monotonically increasing
// sequence number, and a response is applied only if its tag is still the
// latest one issued. A slow stale response can then never overwrite a
// fresher result.
package search

import "sync"

// Sequencer issues and checks query sequence numbers. Safe for concurrent
// use by multiple in-flight requests.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Next returns a new sequence number for an outgoing query.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Latest reports whether seq is still the most recently issued number.
// Responses failing this check must be discarded.
func (s *Sequencer) Latest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.latest
}
