package timer

import (
	"fmt"
	"sync"
	"time"

	"timetracker/internal/timelog"
)

// Zero is the elapsed display while no entry is running.
const Zero = "00:00:00"

// Scheduler runs fn every interval until the returned stop func is called.
type Scheduler func(interval time.Duration, fn func()) (stop func())

// Interval is the default Scheduler, backed by a time.Ticker goroutine.
func Interval(interval time.Duration, fn func()) func() {
	stopChan := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(stopChan) })
	}
}

// Ticker keeps the elapsed-time display of the running entry current.
// It is Idle while no entry runs and Ticking otherwise.
type Ticker struct {
	mu       sync.RWMutex
	now      func() time.Time
	schedule Scheduler
	interval time.Duration
	onTick   func(elapsed string)

	start   *time.Time
	ticking bool
	gen     uint64
	stop    func()
	elapsed string
}

type Option func(*Ticker)

func WithClock(now func() time.Time) Option {
	return func(t *Ticker) { t.now = now }
}

func WithScheduler(s Scheduler) Option {
	return func(t *Ticker) { t.schedule = s }
}

func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOnTick registers a callback invoked after every recomputation.
func WithOnTick(fn func(elapsed string)) Option {
	return func(t *Ticker) { t.onTick = fn }
}

func New(opts ...Option) *Ticker {
	t := &Ticker{
		now:      time.Now,
		schedule: Interval,
		interval: time.Second,
		elapsed:  Zero,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Sync moves the ticker to match the running entry: Ticking against it when
// non-nil, Idle otherwise. A new running entry always replaces the previous
// periodic task.
func (t *Ticker) Sync(running *timelog.TimeEntry) {
	if running == nil {
		t.idle()
		return
	}
	t.tickAgainst(running.Start)
}

func (t *Ticker) tickAgainst(start *time.Time) {
	t.mu.Lock()
	t.cancelLocked()
	t.gen++
	gen := t.gen
	if start != nil {
		s := *start
		t.start = &s
	} else {
		t.start = nil
	}
	t.ticking = true
	t.mu.Unlock()

	t.tick(gen)

	stop := t.schedule(t.interval, func() { t.tick(gen) })

	t.mu.Lock()
	if t.gen != gen {
		// Replaced while scheduling.
		t.mu.Unlock()
		stop()
		return
	}
	t.stop = stop
	t.mu.Unlock()
}

func (t *Ticker) idle() {
	t.mu.Lock()
	wasTicking := t.ticking
	t.cancelLocked()
	t.gen++
	t.start = nil
	t.ticking = false
	t.elapsed = Zero
	t.mu.Unlock()

	if wasTicking && t.onTick != nil {
		t.onTick(Zero)
	}
}

func (t *Ticker) cancelLocked() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// tick recomputes the display. Stale generations and entries without a
// start timestamp leave the display untouched.
func (t *Ticker) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.ticking || t.start == nil {
		t.mu.Unlock()
		return
	}
	t.elapsed = FormatElapsed(t.now().Sub(*t.start))
	elapsed := t.elapsed
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(elapsed)
	}
}

// Close cancels any periodic task without touching the display.
func (t *Ticker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.gen++
}

func (t *Ticker) Elapsed() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.elapsed
}

func (t *Ticker) Ticking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ticking
}

// FormatElapsed renders d as HH:MM:SS using whole seconds. Hours are not
// wrapped at 24 and negative durations render as zero.
func FormatElapsed(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
