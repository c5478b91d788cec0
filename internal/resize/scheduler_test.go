package resize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	widths []int
}

func (r *recorder) record(w int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widths = append(r.widths, w)
}

func (r *recorder) got() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.widths...)
}

type fakeSource struct {
	emit      func(int)
	stopped   int
	subscribe error
}

func (f *fakeSource) Subscribe(_ context.Context, emit func(int)) (func(), error) {
	if f.subscribe != nil {
		return nil, f.subscribe
	}
	f.emit = emit
	return func() { f.stopped++ }, nil
}

func TestSchedulerLifecycle(t *testing.T) {
	rec := &recorder{}
	src := &fakeSource{}
	s := New(src, rec.record, logr.Discard())
	assert.Equal(t, Unobserved, s.State())

	s.Start(context.Background(), 80)
	assert.Equal(t, Observing, s.State())
	assert.False(t, s.Degraded())
	assert.Equal(t, []int{80}, rec.got(), "computes once at mount")

	src.emit(60)
	src.emit(60)
	s.Notify(100)
	assert.Equal(t, []int{80, 60, 60, 100}, rec.got(), "every event recomputes, including repeats")
	assert.Equal(t, 100, s.LastWidth())

	s.Start(context.Background(), 10)
	assert.Equal(t, []int{80, 60, 60, 100}, rec.got(), "second Start is a no-op")

	s.Stop()
	assert.Equal(t, Unobserved, s.State())
	assert.Equal(t, 1, src.stopped)

	src.emit(40)
	s.Notify(50)
	assert.Equal(t, []int{80, 60, 60, 100}, rec.got(), "events after Stop are discarded")

	s.Stop()
	assert.Equal(t, 1, src.stopped, "Stop is idempotent")
}

func TestSchedulerRestart(t *testing.T) {
	rec := &recorder{}
	src := &fakeSource{}
	s := New(src, rec.record, logr.Discard())
	s.Start(context.Background(), 10)
	s.Stop()
	s.Start(context.Background(), 20)
	src.emit(30)
	s.Stop()
	assert.Equal(t, []int{10, 20, 30}, rec.got())
	assert.Equal(t, 2, src.stopped)
}

func TestSchedulerDegradesWithoutSource(t *testing.T) {
	var logs []string
	log := funcr.New(func(prefix, args string) {
		logs = append(logs, args)
	}, funcr.Options{Verbosity: 1})

	rec := &recorder{}
	s := New(nil, rec.record, log)
	s.Start(context.Background(), 42)
	assert.True(t, s.Degraded())
	assert.Equal(t, []int{42}, rec.got())
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "resize observation unavailable")
	s.Stop()
	assert.Equal(t, Unobserved, s.State())
}

func TestSchedulerDegradesOnSubscribeError(t *testing.T) {
	rec := &recorder{}
	s := New(&fakeSource{subscribe: errors.New("boom")}, rec.record, logr.Discard())
	s.Start(context.Background(), 5)
	assert.True(t, s.Degraded())
	assert.Equal(t, []int{5}, rec.got())
	assert.Equal(t, Observing, s.State())
}

func TestPushedSource(t *testing.T) {
	rec := &recorder{}
	s := New(Pushed{}, rec.record, logr.Discard())
	s.Start(context.Background(), 80)
	s.Notify(81)
	s.Stop()
	assert.False(t, s.Degraded())
	assert.Equal(t, []int{80, 81}, rec.got())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "observing", Observing.String())
	assert.Equal(t, "unobserved", Unobserved.String())
}

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               {}

func TestTTYSourceEmitsChangedWidths(t *testing.T) {
	var mu sync.Mutex
	width := 80
	tk := &fakeTicker{ch: make(chan time.Time)}
	src := &TTYSource{
		Fd:         3,
		IsTerminal: func(int) bool { return true },
		GetSize: func(int) (int, int, error) {
			mu.Lock()
			defer mu.Unlock()
			return width, 24, nil
		},
		NewTicker: func(time.Duration) Ticker { return tk },
	}

	got := make(chan int, 4)
	stop, err := src.Subscribe(context.Background(), func(w int) { got <- w })
	require.NoError(t, err)

	tk.ch <- time.Now() // unchanged: nothing emitted
	mu.Lock()
	width = 100
	mu.Unlock()
	tk.ch <- time.Now()
	tk.ch <- time.Now() // unchanged again

	select {
	case w := <-got:
		assert.Equal(t, 100, w)
	case <-time.After(time.Second):
		t.Fatal("expected a width event")
	}
	stop()
	assert.Empty(t, got)
}

func TestTTYSourceEmitsHeightOnlyChanges(t *testing.T) {
	var mu sync.Mutex
	height := 24
	tk := &fakeTicker{ch: make(chan time.Time)}
	src := &TTYSource{
		Fd:         3,
		IsTerminal: func(int) bool { return true },
		GetSize: func(int) (int, int, error) {
			mu.Lock()
			defer mu.Unlock()
			return 80, height, nil
		},
		NewTicker: func(time.Duration) Ticker { return tk },
	}

	got := make(chan int, 4)
	stop, err := src.Subscribe(context.Background(), func(w int) { got <- w })
	require.NoError(t, err)

	mu.Lock()
	height = 40
	mu.Unlock()
	tk.ch <- time.Now()
	tk.ch <- time.Now() // unchanged

	select {
	case w := <-got:
		assert.Equal(t, 80, w, "the current width is re-emitted")
	case <-time.After(time.Second):
		t.Fatal("expected an event for the height change")
	}
	stop()
	assert.Empty(t, got)
}

func TestTTYSourceUnavailable(t *testing.T) {
	src := &TTYSource{IsTerminal: func(int) bool { return false }}
	_, err := src.Subscribe(context.Background(), func(int) {})
	require.ErrorIs(t, err, ErrUnavailable)

	var nilSrc *TTYSource
	_, err = nilSrc.Subscribe(context.Background(), func(int) {})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestTTYSourceWithScheduler(t *testing.T) {
	var logs []string
	log := funcr.New(func(_, args string) { logs = append(logs, args) }, funcr.Options{Verbosity: 1})
	src := &TTYSource{IsTerminal: func(int) bool { return false }}
	s := New(src, func(int) {}, log)
	s.Start(context.Background(), 80)
	assert.True(t, s.Degraded())
	require.NotEmpty(t, logs)
	assert.True(t, strings.Contains(logs[0], "computed once"))
}
