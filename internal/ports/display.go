package ports

import "github.com/bnema/unich-miner/internal/domain"

// Display receives state for the currently displayed account only.
// Implementations must not block; calls arrive from agent goroutines.
type Display interface {
	ShowSnapshot(snapshot domain.Snapshot)
	AppendLog(id domain.AccountID, line string)
	ShowCursor(index, count int)
	ShowEmpty(reason string)
}
