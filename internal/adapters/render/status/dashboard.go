package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/unich-miner/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 100
	defaultHeight = 24
	// banner line plus the footer and help lines
	chromeHeight = 4
)

// Navigator moves the displayed account. Implementations push the new
// state back through the Display.
type Navigator interface {
	Next() int
	Previous() int
}

type dashboard struct {
	nav         Navigator
	keys        keyMap
	help        help.Model
	logs        viewport.Model
	styles      styles
	snapshot    domain.Snapshot
	hasSnapshot bool
	lines       []string
	index       int
	count       int
	empty       string
	width       int
	height      int
}

func newDashboard(nav Navigator) dashboard {
	m := dashboard{
		nav:    nav,
		keys:   newKeyMap(),
		help:   help.New(),
		logs:   viewport.New(0, 0),
		styles: newStyles(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.resize()

	return m
}

func (m dashboard) Init() tea.Cmd {
	return nil
}

func (m dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.navigate(func(nav Navigator) { nav.Next() })
		case key.Matches(msg, m.keys.Previous):
			return m, m.navigate(func(nav Navigator) { nav.Previous() })
		}
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.hasSnapshot = true
		m.empty = ""
		m.lines = append([]string(nil), msg.snapshot.Logs...)
		m.refreshLogs()
		return m, nil
	case logMsg:
		if !m.hasSnapshot || msg.id != m.snapshot.ID {
			return m, nil
		}
		m.lines = append(m.lines, msg.line)
		if over := len(m.lines) - domain.DefaultLogCapacity; over > 0 {
			m.lines = m.lines[over:]
		}
		m.refreshLogs()
		return m, nil
	case cursorMsg:
		m.index, m.count = msg.index, msg.count
		return m, nil
	case emptyMsg:
		m.empty = msg.reason
		m.hasSnapshot = false
		m.index, m.count = 0, 0
		m.lines = nil
		m.refreshLogs()
		return m, nil
	}

	var cmd tea.Cmd
	m.logs, cmd = m.logs.Update(msg)
	return m, cmd
}

// navigate runs off the update loop because the navigator reports back
// through the program it would otherwise wait on.
func (m dashboard) navigate(move func(Navigator)) tea.Cmd {
	if m.nav == nil {
		return nil
	}

	nav := m.nav
	return func() tea.Msg {
		move(nav)
		return nil
	}
}

func (m *dashboard) resize() {
	_, logWidth, panelHeight := m.panelSizes()

	// border, padding and the pane title
	m.logs.Width = max(logWidth-4, 1)
	m.logs.Height = max(panelHeight-3, 1)
	m.refreshLogs()
}

func (m *dashboard) refreshLogs() {
	m.logs.SetContent(strings.Join(m.lines, "\n"))
	m.logs.GotoBottom()
}

func (m dashboard) panelSizes() (infoWidth, logWidth, panelHeight int) {
	width := max(m.width, 20)
	infoWidth = width / 2
	logWidth = width - infoWidth
	panelHeight = max(m.height-chromeHeight, 5)

	return infoWidth, logWidth, panelHeight
}

func (m dashboard) View() string {
	infoWidth, logWidth, panelHeight := m.panelSizes()

	var info, logs string
	if m.empty != "" {
		logs = m.styles.warning.Render(m.empty) + "\n" + m.styles.empty.Render("Press 'q' or Ctrl+C to exit.")
	} else {
		if m.hasSnapshot {
			info = infoLines(m.snapshot, m.styles)
		} else {
			info = m.styles.empty.Render("Loading...")
		}
		logs = m.logs.View()
	}

	infoPane := m.styles.infoPanel.
		Width(infoWidth - 2).
		Height(panelHeight - 2).
		Render(m.styles.panelTitle.Render("User Info") + "\n" + info)
	logPane := m.styles.logPanel.
		Width(logWidth - 2).
		Height(panelHeight - 2).
		Render(m.styles.panelTitle.Render("System Logs") + "\n" + logs)

	count := m.count
	if m.empty != "" {
		count = 0
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderBanner(m.width, m.styles),
		lipgloss.JoinHorizontal(lipgloss.Top, infoPane, logPane),
		m.styles.footer.Render(footerText(m.index, count)),
		m.help.View(m.keys),
	)
}

type DashboardOptions struct {
	Input  io.Reader
	Output io.Writer
	// Inline disables the alternate screen.
	Inline bool
}

// Dashboard is the interactive terminal view of the running agents.
type Dashboard struct {
	program *tea.Program
	display *Display
}

func NewDashboard(nav Navigator, display *Display, opts DashboardOptions) *Dashboard {
	programOpts := make([]tea.ProgramOption, 0, 3)
	if !opts.Inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(newDashboard(nav), programOpts...)
	display.attach(program.Send)

	return &Dashboard{program: program, display: display}
}

// Run blocks until the user quits or ctx is cancelled. Both are a clean exit.
func (d *Dashboard) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, d.program.Quit)
	defer stop()
	defer d.display.Close()

	if _, err := d.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}

	return nil
}
