package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
}

// fakeClock hands out tickers and timers that only fire when a test sends
// on their channels.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	timers  []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) ports.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTicker{d: d, c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) NewTimer(d time.Duration) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{d: d, c: make(chan time.Time, 1)}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) ticker(i int) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i >= len(c.tickers) {
		return nil
	}
	return c.tickers[i]
}

func (c *fakeClock) timerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *fakeClock) timer(i int) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i >= len(c.timers) {
		return nil
	}
	return c.timers[i]
}

type fakeTicker struct {
	d       time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeTimer struct {
	d       time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *fakeTimer) fire() {
	t.c <- time.Time{}
}

func (t *fakeTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type recordingDisplay struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
	logs      []string
	cursors   [][2]int
	empty     []string
}

func (d *recordingDisplay) ShowSnapshot(snapshot domain.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshots = append(d.snapshots, snapshot)
}

func (d *recordingDisplay) AppendLog(_ domain.AccountID, line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logs = append(d.logs, line)
}

func (d *recordingDisplay) ShowCursor(index, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = append(d.cursors, [2]int{index, count})
}

func (d *recordingDisplay) ShowEmpty(reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.empty = append(d.empty, reason)
}

func (d *recordingDisplay) lastCursor() [2]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cursors) == 0 {
		return [2]int{-1, -1}
	}
	return d.cursors[len(d.cursors)-1]
}

func (d *recordingDisplay) snapshotIDs() []domain.AccountID {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]domain.AccountID, 0, len(d.snapshots))
	for _, s := range d.snapshots {
		ids = append(ids, s.ID)
	}
	return ids
}

func (d *recordingDisplay) logLines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.logs...)
}

type staticLines struct {
	lines []string
	err   error
}

func (s staticLines) CredentialLines(context.Context) ([]string, error) { return s.lines, s.err }
func (s staticLines) ProxyLines(context.Context) ([]string, error)      { return s.lines, s.err }
