package deck

import (
	"sort"
	"time"
)

// Scheduler runs f once after d elapses. Hosts must run f on the same event
// loop that delivers input, never concurrently with other deck calls.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// task identifies deferred work by the slide it targets and the navigation
// generation it was scheduled in, so it can tell at fire time whether the
// deck has moved on.
type task struct {
	ordinal    int
	generation uint64
}

// ManualScheduler is a Scheduler driven by an explicit clock. It is used by
// tests and by hosts that replay time themselves.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []manualTask
}

type manualTask struct {
	at  time.Duration
	seq int
	f   func()
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, manualTask{at: s.now + d, seq: s.seq, f: f})
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order. Tasks scheduled while running are honoured if they fall
// inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		i := s.next(end)
		if i < 0 {
			break
		}
		t := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if t.at > s.now {
			s.now = t.at
		}
		t.f()
	}
	s.now = end
}

func (s *ManualScheduler) next(end time.Duration) int {
	if len(s.pending) == 0 {
		return -1
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	if s.pending[0].at > end {
		return -1
	}
	return 0
}

// Pending returns the number of tasks not yet run.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// Flush runs every pending task regardless of its due time.
func (s *ManualScheduler) Flush() {
	for len(s.pending) > 0 {
		last := s.pending[0].at
		for _, t := range s.pending {
			if t.at > last {
				last = t.at
			}
		}
		s.Advance(last - s.now)
	}
}
