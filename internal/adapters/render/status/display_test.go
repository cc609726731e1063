package status

import (
	"sync"
	"testing"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSend struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSend) send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSend) received() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func TestDisplayDeliversQueuedUpdatesInOrder(t *testing.T) {
	display := NewDisplay()
	t.Cleanup(display.Close)

	display.ShowCursor(0, 2)
	display.ShowSnapshot(activeSnapshot())

	rec := &recordingSend{}
	display.attach(rec.send)
	display.AppendLog(1, "late line")
	display.ShowEmpty("nothing to run")

	require.Eventually(t, func() bool { return len(rec.received()) == 4 }, time.Second, time.Millisecond)

	msgs := rec.received()
	assert.Equal(t, cursorMsg{index: 0, count: 2}, msgs[0])
	assert.IsType(t, snapshotMsg{}, msgs[1])
	assert.Equal(t, logMsg{id: domain.AccountID(1), line: "late line"}, msgs[2])
	assert.Equal(t, emptyMsg{reason: "nothing to run"}, msgs[3])
}

func TestDisplayDropsUpdatesAfterClose(t *testing.T) {
	display := NewDisplay()
	rec := &recordingSend{}
	display.attach(rec.send)
	display.Close()
	display.Close()

	display.ShowCursor(0, 1)

	assert.Never(t, func() bool { return len(rec.received()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}
