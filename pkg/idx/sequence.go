package idx

import (
	"sync"
	"time"
)

// Sequence hands out int64 record ids. Ids track the wall clock in
// milliseconds so they still read as creation instants, but every id is
// strictly greater than the one before it, so two records created in the same
// millisecond never share an id.
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequence returns a Sequence driven by time.Now.
func NewSequence() *Sequence {
	return &Sequence{now: time.Now}
}

// NewSequenceWithClock returns a Sequence driven by the given clock. Handy
// for tests that need to freeze time.
func NewSequenceWithClock(now func() time.Time) *Sequence {
	return &Sequence{now: now}
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe moves the sequence past an id that already exists, typically one
// read back from storage on startup.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id > s.last {
		s.last = id
	}
}

// Last returns the most recently issued or observed id.
func (s *Sequence) Last() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// TimeOf converts an id back to the instant it was derived from. Ids bumped
// past a collision drift by a millisecond per bump, which is fine for display.
func TimeOf(id int64) time.Time {
	return time.UnixMilli(id).UTC()
}
