package status

import (
	"strings"
	"testing"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSnapshot() domain.Snapshot {
	return domain.Snapshot{
		ID:              1,
		Status:          domain.StatusMiningActive,
		RemainingMillis: 3_723_000,
		TotalPoints:     1234.5,
		Email:           "miner@example.com",
		IPAddress:       "203.0.113.7",
		Proxy:           "http://10.0.0.1:8080 (http)",
		Logs:            []string{"[09:30:00] [Account 1] Mining is running"},
	}
}

func TestRenderSingleAccountSnapshot(t *testing.T) {
	output, err := Render([]domain.Snapshot{activeSnapshot()}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "Account 1")
	assert.Contains(t, output, "miner@example.com")
	assert.Contains(t, output, "1234.5")
	assert.Contains(t, output, "Mining Started")
	assert.Contains(t, output, "1h 2m 3s")
	assert.Contains(t, output, "203.0.113.7")
	assert.Contains(t, output, "http://10.0.0.1:8080 (http)")
	assert.NotContains(t, output, "Mining is running")
}

func TestRenderMultiAccountSnapshotsWithLogs(t *testing.T) {
	failed := domain.NewSnapshot(2, domain.DirectProxy())
	failed.Status = domain.StatusError
	failed.Logs = []string{"[09:30:01] [Account 2] Invalid token: Unauthorized (401)"}

	output, err := Render([]domain.Snapshot{activeSnapshot(), failed}, RenderOptions{ShowLogs: true})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "Mining Started: 1 | Idle: 0 | Error: 1")
	assert.Contains(t, output, "Account 2")
	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "N/A")
	assert.Contains(t, output, "None")
	assert.Contains(t, output, "Mining is running")
	assert.Contains(t, output, "Unauthorized (401)")
}

func TestRenderWithoutSnapshots(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No account statuses available.")
	assert.NotContains(t, output, "Mining Started:")
}

func TestRenderKeepsAccountOrder(t *testing.T) {
	idle := domain.NewSnapshot(2, domain.DirectProxy())
	third := activeSnapshot()
	third.ID = 3

	output, err := Render([]domain.Snapshot{activeSnapshot(), idle, third}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Mining Started: 2 | Idle: 1 | Error: 0")
	first := strings.Index(output, "Account 1")
	second := strings.Index(output, "Account 2")
	last := strings.Index(output, "Account 3")
	require.True(t, first >= 0 && second >= 0 && last >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, last)
}

func TestStatusTally(t *testing.T) {
	var tally statusTally
	for _, status := range []domain.Status{domain.StatusIdle, domain.StatusError, domain.StatusError} {
		tally = tally.add(status)
	}

	assert.Equal(t, statusTally{idle: 1, failed: 2}, tally)
	assert.Equal(t, "Mining Started: 0 | Idle: 1 | Error: 2", tally.String())
}

func TestIdleSnapshotShowsDashForNextMining(t *testing.T) {
	snapshot := domain.NewSnapshot(3, domain.DirectProxy())
	snapshot.RemainingMillis = 60_000

	output := infoLines(snapshot, newStyles())
	assert.Contains(t, output, "Idle")
	assert.Contains(t, output, "Next Mining   : -")
}

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 42, want: "42"},
		{in: 1234.5, want: "1234.5"},
		{in: 0.125, want: "0.125"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPoints(tt.in))
		})
	}
}

func TestFooterText(t *testing.T) {
	assert.Equal(t, "Current Account: 2/3 | Use Left/Right arrow keys to switch accounts.", footerText(1, 3))
	assert.Equal(t, "Current Account: 0/0 | Use Left/Right arrow keys to switch accounts.", footerText(0, 0))
}
