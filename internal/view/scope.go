package view

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type task struct {
	timer clockwork.Timer
	due   time.Time
}

// Scope ties delayed tasks to the lifetime of one view. Closing the scope
// cancels every task that has not fired yet.
type Scope struct {
	clock clockwork.Clock

	mu      sync.Mutex
	closed  bool
	nextID  uint64
	pending map[uint64]task
	onClose []func()
}

// NewScope returns an open scope scheduling on c.
func NewScope(c clockwork.Clock) *Scope {
	return &Scope{clock: c, pending: make(map[uint64]task)}
}

// Now reads the scope's clock.
func (s *Scope) Now() time.Time { return s.clock.Now() }

// After runs fn once d has elapsed unless the scope is closed or the returned
// cancel func is called first. Scheduling on a closed scope is a no-op.
//
// fn runs on a timer goroutine. Callbacks that mutate view state must take the
// view's lock and re-check Closed, since Close may race with an in-flight fire.
// A task stays pending until fn returns.
func (s *Scope) After(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	due := s.clock.Now().Add(d)
	timer := s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.pending[id]
		closed := s.closed
		s.mu.Unlock()
		if live && !closed {
			fn()
		}
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	})
	s.pending[id] = task{timer: timer, due: due}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.pending[id]; ok {
			t.timer.Stop()
			delete(s.pending, id)
		}
	}
}

// OnClose registers fn to run once when the scope closes.
func (s *Scope) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = append(s.onClose, fn)
}

// Pending returns the number of scheduled tasks that have neither finished nor been cancelled.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Due returns the number of pending tasks whose deadline has passed, that is
// tasks that are firing right now or about to.
func (s *Scope) Due() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.due.After(now) {
			n++
		}
	}
	return n
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels all pending tasks and runs the OnClose hooks. It is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, t := range s.pending {
		t.timer.Stop()
		delete(s.pending, id)
	}
	hooks := s.onClose
	s.onClose = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
