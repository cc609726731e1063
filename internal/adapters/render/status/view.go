package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const bannerText = "✪ UNICH AUTO MINING ✪"

type RenderOptions struct {
	// ShowLogs appends each account's retained log lines below its details.
	ShowLogs bool
}

// statusTally counts accounts per status.
type statusTally struct {
	active, idle, failed int
}

func (t statusTally) add(status domain.Status) statusTally {
	switch status {
	case domain.StatusMiningActive:
		t.active++
	case domain.StatusError:
		t.failed++
	default:
		t.idle++
	}
	return t
}

func (t statusTally) String() string {
	return fmt.Sprintf("%s: %d | %s: %d | %s: %d",
		domain.StatusMiningActive, t.active,
		domain.StatusIdle, t.idle,
		domain.StatusError, t.failed,
	)
}

func renderReport(count int, tally statusTally, sections []string, s styles) string {
	lines := []string{
		s.title.Render("Unich Mining Status"),
		s.header.Render(fmt.Sprintf("accounts: %d", count)),
	}

	if count == 0 {
		lines = append(lines, s.empty.Render("No account statuses available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.header.Render(tally.String()))
	lines = append(lines, sections...)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(snapshot domain.Snapshot, opts RenderOptions, s styles) string {
	parts := []string{
		s.account.Render(fmt.Sprintf("Account %s", snapshot.ID)),
		infoLines(snapshot, s),
	}

	if opts.ShowLogs && len(snapshot.Logs) > 0 {
		parts = append(parts, s.header.Render(strings.Join(snapshot.Logs, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func infoLines(snapshot domain.Snapshot, s styles) string {
	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Email Address", snapshot.Email, s.email},
		{"Total Points", formatPoints(snapshot.TotalPoints), s.points},
		{"Status", snapshot.Status.String(), s.statusStyle(snapshot.Status)},
		{"Next Mining", snapshot.NextMining(), s.countdown},
		{"IP Address", snapshot.IPAddress, s.network},
		{"Proxy", snapshot.Proxy, s.network},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, s.label.Render(fmt.Sprintf("%-14s:", row.label))+" "+row.style.Render(row.value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}

func footerText(index, count int) string {
	current := 0
	if count > 0 {
		current = index + 1
	}

	return fmt.Sprintf("Current Account: %d/%d | Use Left/Right arrow keys to switch accounts.", current, count)
}

func renderBanner(width int, s styles) string {
	banner := s.title.Render(bannerText)
	if width <= 0 {
		return banner
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner)
}
