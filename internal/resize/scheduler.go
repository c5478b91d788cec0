// Package resize drives recomputation when a container's width changes.
package resize

import (
	"context"
	"errors"
	"sync"

	"github.com/go-logr/logr"
)

// ErrUnavailable is returned by a Source that cannot observe size changes in
// the current environment (for example when output is not a terminal).
var ErrUnavailable = errors.New("resize observation unavailable")

// State is the scheduler lifecycle state.
type State int

const (
	// Unobserved is the state before Start and after Stop.
	Unobserved State = iota
	// Observing is the state between Start and Stop.
	Observing
)

func (s State) String() string {
	if s == Observing {
		return "observing"
	}
	return "unobserved"
}

// Source delivers container widths. Subscribe starts delivery to emit and
// returns a function that stops it; emit may be called from another goroutine.
type Source interface {
	Subscribe(ctx context.Context, emit func(width int)) (stop func(), err error)
}

// Pushed is a Source for hosts that deliver widths themselves through
// Scheduler.Notify, such as a Bubble Tea program receiving WindowSizeMsg.
type Pushed struct{}

// Subscribe implements Source.
func (Pushed) Subscribe(context.Context, func(int)) (func(), error) {
	return func() {}, nil
}

// Scheduler runs onResize once at Start and again for every width the source
// (or the host, via Notify) reports until Stop.
type Scheduler struct {
	mu       sync.Mutex
	state    State
	degraded bool
	last     int
	src      Source
	onResize func(width int)
	stop     func()
	cancel   context.CancelFunc
	log      logr.Logger
}

// New returns an unobserved scheduler. A nil src makes the scheduler compute
// once at Start and never react to resizes.
func New(src Source, onResize func(width int), log logr.Logger) *Scheduler {
	if onResize == nil {
		onResize = func(int) {}
	}
	return &Scheduler{src: src, onResize: onResize, log: log}
}

// Start computes once with initialWidth and begins observing. Calling Start on
// an observing scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context, initialWidth int) {
	s.mu.Lock()
	if s.state == Observing {
		s.mu.Unlock()
		return
	}
	s.state = Observing
	s.degraded = false
	s.last = initialWidth
	s.mu.Unlock()

	s.onResize(initialWidth)

	if s.src == nil {
		s.degrade(ErrUnavailable)
		return
	}

	subCtx, cancel := context.WithCancel(ctx)
	stop, err := s.src.Subscribe(subCtx, s.Notify)
	if err != nil {
		cancel()
		s.degrade(err)
		return
	}

	s.mu.Lock()
	if s.state != Observing {
		// Stopped while subscribing.
		s.mu.Unlock()
		cancel()
		stop()
		return
	}
	s.stop = stop
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *Scheduler) degrade(err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	if errors.Is(err, ErrUnavailable) {
		s.log.V(1).Info("resize observation unavailable; layout computed once", "reason", err.Error())
		return
	}
	s.log.Error(err, "resize subscription failed; layout computed once")
}

// Notify reports a new container width. It runs onResize synchronously and is
// ignored unless the scheduler is observing.
func (s *Scheduler) Notify(width int) {
	s.mu.Lock()
	if s.state != Observing {
		s.mu.Unlock()
		return
	}
	s.last = width
	s.mu.Unlock()
	s.onResize(width)
}

// Stop releases the observation. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == Unobserved {
		s.mu.Unlock()
		return
	}
	s.state = Unobserved
	stop, cancel := s.stop, s.cancel
	s.stop, s.cancel = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stop != nil {
		stop()
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Degraded reports whether the scheduler fell back to computing once.
func (s *Scheduler) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// LastWidth returns the most recent width passed to onResize.
func (s *Scheduler) LastWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
