package status

import (
	"sync"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/bnema/unich-miner/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

type snapshotMsg struct{ snapshot domain.Snapshot }

type logMsg struct {
	id   domain.AccountID
	line string
}

type cursorMsg struct{ index, count int }

type emptyMsg struct{ reason string }

// Display queues display updates for a dashboard. Calls never block the
// caller; a pump goroutine delivers them to the program in order.
type Display struct {
	mu      sync.Mutex
	queue   []tea.Msg
	wake    chan struct{}
	done    chan struct{}
	started bool
	once    sync.Once
}

var _ ports.Display = (*Display)(nil)

func NewDisplay() *Display {
	return &Display{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (d *Display) ShowSnapshot(snapshot domain.Snapshot) {
	d.enqueue(snapshotMsg{snapshot: snapshot})
}

func (d *Display) AppendLog(id domain.AccountID, line string) {
	d.enqueue(logMsg{id: id, line: line})
}

func (d *Display) ShowCursor(index, count int) {
	d.enqueue(cursorMsg{index: index, count: count})
}

func (d *Display) ShowEmpty(reason string) {
	d.enqueue(emptyMsg{reason: reason})
}

// Close stops delivery. Updates sent afterwards are dropped.
func (d *Display) Close() {
	d.once.Do(func() { close(d.done) })
}

func (d *Display) attach(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return
	}
	d.started = true

	go d.pump(send)
}

func (d *Display) enqueue(msg tea.Msg) {
	select {
	case <-d.done:
		return
	default:
	}

	d.mu.Lock()
	d.queue = append(d.queue, msg)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Display) pump(send func(tea.Msg)) {
	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		}

		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		d.mu.Unlock()

		for _, msg := range batch {
			send(msg)
		}
	}
}
