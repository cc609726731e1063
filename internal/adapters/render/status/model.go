package status

import (
	"errors"
	"io"

	"github.com/bnema/unich-miner/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// renderAccountMsg asks the report model to render the account at index.
type renderAccountMsg struct {
	index int
}

// reportModel renders a status report one account per update and keeps a
// tally of statuses for the summary line.
type reportModel struct {
	snapshots []domain.Snapshot
	opts      RenderOptions
	styles    styles

	sections []string
	tally    statusTally
	output   string
}

func newReportModel(snapshots []domain.Snapshot, opts RenderOptions) reportModel {
	return reportModel{
		snapshots: snapshots,
		opts:      opts,
		styles:    newStyles(),
		sections:  make([]string, 0, len(snapshots)),
	}
}

func (m reportModel) Init() tea.Cmd {
	return renderAccountCmd(0)
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, ok := msg.(renderAccountMsg)
	if !ok {
		return m, nil
	}

	if next.index >= len(m.snapshots) {
		m.output = renderReport(len(m.snapshots), m.tally, m.sections, m.styles)
		return m, tea.Quit
	}

	snapshot := m.snapshots[next.index]
	m.tally = m.tally.add(snapshot.Status)
	m.sections = append(m.sections, m.styles.section.Render(renderAccount(snapshot, m.opts, m.styles)))

	return m, renderAccountCmd(next.index + 1)
}

func (m reportModel) View() string {
	return m.output
}

func renderAccountCmd(index int) tea.Cmd {
	return func() tea.Msg {
		return renderAccountMsg{index: index}
	}
}

// Render builds the status report of snapshots in account order.
func Render(snapshots []domain.Snapshot, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newReportModel(snapshots, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	report, ok := finalModel.(reportModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return report.View(), nil
}
