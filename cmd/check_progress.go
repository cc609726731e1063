package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type accountCheckedMsg struct {
	snapshot domain.Snapshot
}

type checkDoneMsg struct {
	err error
}

// checkProgressModel counts finished accounts by status while a check runs.
type checkProgressModel struct {
	spinner  spinner.Model
	total    int
	checked  int
	byStatus map[domain.Status]int
	started  time.Time
	elapsed  time.Duration
	check    tea.Cmd
	err      error
	done     bool
}

func newCheckProgressModel(total int, check tea.Cmd) checkProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("51"))),
	)

	return checkProgressModel{
		spinner:  s,
		total:    total,
		byStatus: map[domain.Status]int{},
		started:  time.Now(),
		check:    check,
	}
}

func (m checkProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check)
}

func (m checkProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.elapsed = time.Since(m.started).Truncate(time.Second)
		return m, cmd
	case accountCheckedMsg:
		m.checked++
		m.byStatus[msg.snapshot.Status]++
		return m, nil
	case checkDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m checkProgressModel) View() string {
	if m.done {
		return ""
	}

	line := fmt.Sprintf("%s Checking %d account(s)... %d/%d", m.spinner.View(), m.total, m.checked, m.total)
	if tally := m.tally(); tally != "" {
		line += " (" + tally + ")"
	}
	if m.elapsed > 0 {
		line += " " + m.elapsed.String()
	}

	return line
}

func (m checkProgressModel) tally() string {
	parts := make([]string, 0, 3)
	for _, status := range []domain.Status{domain.StatusMiningActive, domain.StatusIdle, domain.StatusError} {
		if n := m.byStatus[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", status, n))
		}
	}
	return strings.Join(parts, ", ")
}

// runCheckProgress shows live progress on output while check runs. check
// reports each finished account through its callback.
func runCheckProgress(ctx context.Context, output io.Writer, total int, check func(context.Context, func(domain.Snapshot)) error) error {
	var program *tea.Program

	checkCmd := func() tea.Msg {
		return checkDoneMsg{err: check(ctx, func(snapshot domain.Snapshot) {
			program.Send(accountCheckedMsg{snapshot: snapshot})
		})}
	}

	program = tea.NewProgram(
		newCheckProgressModel(total, checkCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(checkProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
