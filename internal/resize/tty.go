package resize

import (
	"context"
	"time"

	"golang.org/x/term"
)

// DefaultPollInterval is how often TTYSource samples the terminal size.
const DefaultPollInterval = 250 * time.Millisecond

// Ticker is the subset of time.Ticker used by TTYSource.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	*time.Ticker
}

func (t realTicker) C() <-chan time.Time { return t.Ticker.C }

// TTYSource polls a terminal's size. Polling works where SIGWINCH does not
// reach the process, such as with piped stdin on Windows.
type TTYSource struct {
	Fd       int
	Interval time.Duration

	GetSize    func(fd int) (width, height int, err error)
	IsTerminal func(fd int) bool
	NewTicker  func(d time.Duration) Ticker
}

// NewTTYSource returns a source polling the terminal behind fd.
func NewTTYSource(fd uintptr) *TTYSource {
	return &TTYSource{
		Fd:         int(fd),
		Interval:   DefaultPollInterval,
		GetSize:    term.GetSize,
		IsTerminal: term.IsTerminal,
		NewTicker:  func(d time.Duration) Ticker { return realTicker{Ticker: time.NewTicker(d)} },
	}
}

// Subscribe implements Source. A sample is emitted when its width or height
// differs from the previous one; a height-only change re-emits the current
// width so hosts that also read the height can follow it. The returned stop
// waits for the poller to exit.
func (t *TTYSource) Subscribe(ctx context.Context, emit func(int)) (func(), error) {
	if t == nil || t.IsTerminal == nil || !t.IsTerminal(t.Fd) {
		return nil, ErrUnavailable
	}
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	lastW, lastH := 0, 0
	if w, h, err := t.GetSize(t.Fd); err == nil {
		lastW, lastH = w, h
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tk := t.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C():
				w, h, err := t.GetSize(t.Fd)
				if err != nil || (w == lastW && h == lastH) {
					continue
				}
				lastW, lastH = w, h
				emit(w)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}
