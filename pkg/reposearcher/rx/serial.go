package rx

import "sync"

// serial runs tasks one at a time in the order they were submitted.
//
// The goroutine that finds the queue idle drains it. A task submitted while a
// drain is in progress (from another goroutine, or re-entrantly from inside a
// task) is appended and run by the active drainer, so do never blocks waiting
// for another task to finish.
type serial struct {
	mu      sync.Mutex
	pending []func()
	running bool
}

func (s *serial) do(task func()) {
	s.mu.Lock()
	s.pending = append(s.pending, task)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	clean := false
	defer func() {
		if clean {
			return
		}
		// A task panicked. Drop what is left so the next producer starts fresh.
		s.mu.Lock()
		s.pending = nil
		s.running = false
		s.mu.Unlock()
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.running = false
			s.mu.Unlock()
			clean = true
			return
		}
		next := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.mu.Unlock()

		next()
	}
}
