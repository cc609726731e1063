package status

import (
	"github.com/bnema/unich-miner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	account     lipgloss.Style
	detail      lipgloss.Style
	warning     lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	label       lipgloss.Style
	email       lipgloss.Style
	points      lipgloss.Style
	countdown   lipgloss.Style
	network     lipgloss.Style
	statusOK    lipgloss.Style
	statusIdle  lipgloss.Style
	statusError lipgloss.Style
	infoPanel   lipgloss.Style
	logPanel    lipgloss.Style
	panelTitle  lipgloss.Style
	footer      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		email:       lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
		points:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		countdown:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		network:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		statusOK:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		statusIdle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		statusError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		infoPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 1),
		logPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("201")).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().Bold(true),
		footer:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) statusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusMiningActive:
		return s.statusOK
	case domain.StatusError:
		return s.statusError
	default:
		return s.statusIdle
	}
}
