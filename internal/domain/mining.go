package domain

import (
	"fmt"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusMiningActive
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusMiningActive:
		return "Mining Started"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type MiningState struct {
	Started         bool
	RemainingMillis int64
}

// AccountInfo is the authoritative account snapshot returned by the remote API.
type AccountInfo struct {
	Email       string
	TotalPoints float64
	Mining      MiningState
}

// FormatRemaining renders milliseconds as "Hh Mm Ss", truncating to whole seconds.
func FormatRemaining(millis int64) string {
	if millis < 0 {
		millis = 0
	}

	d := time.Duration(millis) * time.Millisecond
	hours := int64(d / time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	seconds := int64(d%time.Minute) / int64(time.Second)

	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
