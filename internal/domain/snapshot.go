package domain

const unknownValue = "N/A"

// Snapshot is a read-only copy of one agent's state handed to the display.
type Snapshot struct {
	ID              AccountID
	Status          Status
	RemainingMillis int64
	TotalPoints     float64
	Email           string
	IPAddress       string
	Proxy           string
	Logs            []string
}

func NewSnapshot(id AccountID, proxy Proxy) Snapshot {
	return Snapshot{
		ID:        id,
		Status:    StatusIdle,
		Email:     unknownValue,
		IPAddress: unknownValue,
		Proxy:     proxy.Summary(),
	}
}

// NextMining is the countdown label, "-" unless a cycle is running.
func (s Snapshot) NextMining() string {
	if s.Status != StatusMiningActive {
		return "-"
	}

	return FormatRemaining(s.RemainingMillis)
}
