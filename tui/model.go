// Package tui is the interactive dashboard: edit a scenario, run it,
// and inspect the maker series and trader flow of the result.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"dealersim/internal/config"
	"dealersim/internal/report"
	"dealersim/internal/sim"
	"dealersim/tui/panels"
	"dealersim/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusParams  PanelFocus = 0
	FocusChart   PanelFocus = 1
	FocusTraders PanelFocus = 2
	FocusSummary PanelFocus = 3
)

// Model is the main TUI application model.
type Model struct {
	logger *slog.Logger

	// Panels
	paramsPanel  *panels.ParamsPanel
	chartPanel   *panels.ChartPanel
	tradersPanel *panels.TradersPanel
	summaryPanel *panels.SummaryPanel

	// Focus management
	focusedPanel PanelFocus

	// Window dimensions
	width  int
	height int

	// Status
	statusMsg string
	ready     bool
	running   bool
}

// NewModel creates a new TUI model seeded with a scenario.
func NewModel(scn config.Scenario, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		logger:       logger,
		paramsPanel:  panels.NewParamsPanel(scn),
		chartPanel:   panels.NewChartPanel(),
		tradersPanel: panels.NewTradersPanel(),
		summaryPanel: panels.NewSummaryPanel(),
		focusedPanel: FocusParams,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.paramsPanel.Init(),
		m.chartPanel.Init(),
		m.tradersPanel.Init(),
		m.summaryPanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		// Cycle focus with tab
		case "tab":
			m.cycleFocus()

		// Reverse cycle focus with shift+tab
		case "shift+tab":
			m.focusedPanel--
			if m.focusedPanel < 0 {
				m.focusedPanel = 3
			}

		// Direct panel focus with F1-F4
		case "f1":
			m.setFocus(FocusParams)
		case "f2":
			m.setFocus(FocusChart)
		case "f3":
			m.setFocus(FocusTraders)
		case "f4":
			m.setFocus(FocusSummary)

		// Run shortcut outside the params panel
		case "r":
			if m.focusedPanel != FocusParams {
				cmds = append(cmds, m.paramsPanel.Submit())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.RunRequestedMsg:
		cmds = append(cmds, m.handleRunRequest(msg.Scenario))

	case runCompletedMsg:
		m.handleRunCompleted(msg.res)

	case runFailedMsg:
		m.running = false
		m.statusMsg = "❌ Run failed: " + msg.err.Error()
	}

	// Update focused panel
	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusParams:
		m.paramsPanel, cmd = m.paramsPanel.Update(msg)
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusTraders:
		m.tradersPanel, cmd = m.tradersPanel.Update(msg)
		// The chart's trader series follows the selection here.
		m.chartPanel.SetTraderIndex(m.tradersPanel.SelectedIndex())
	case FocusSummary:
		m.summaryPanel, cmd = m.summaryPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Update focus states
	m.paramsPanel.SetFocus(m.focusedPanel == FocusParams)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.tradersPanel.SetFocus(m.focusedPanel == FocusTraders)
	m.summaryPanel.SetFocus(m.focusedPanel == FocusSummary)

	// Layout:
	// ┌────────────┬────────────────────────────────┐
	// │  Scenario  │             Chart              │
	// │            │                                │
	// ├────────────┴──────────┬─────────────────────┤
	// │        Traders        │        Runs         │
	// └───────────────────────┴─────────────────────┘

	leftWidth := m.width / 3

	topHeight := (m.height - 3) * 2 / 3
	bottomHeight := m.height - topHeight - 3

	m.paramsPanel.SetSize(leftWidth, topHeight)
	m.chartPanel.SetSize(m.width-leftWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.paramsPanel.View(),
		m.chartPanel.View(),
	)

	m.tradersPanel.SetSize(m.width/2, bottomHeight)
	m.summaryPanel.SetSize(m.width-m.width/2, bottomHeight)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.tradersPanel.View(),
		m.summaryPanel.View(),
	)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, statusBar)
}

func (m *Model) renderStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render("F1-F4") + styles.StatusBarDescStyle.Render(" panels"),
		styles.StatusBarKeyStyle.Render("Tab/Enter") + styles.StatusBarDescStyle.Render(" navigate"),
		styles.StatusBarKeyStyle.Render("↑↓") + styles.StatusBarDescStyle.Render(" select"),
		styles.StatusBarKeyStyle.Render("r") + styles.StatusBarDescStyle.Render(" run"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}

	helpStr := lipgloss.JoinHorizontal(lipgloss.Center,
		help[0], " │ ", help[1], " │ ", help[2], " │ ", help[3], " │ ", help[4])

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
}

func (m *Model) cycleFocus() {
	m.focusedPanel = (m.focusedPanel + 1) % 4
}

func (m *Model) handleRunRequest(scn config.Scenario) tea.Cmd {
	if m.running {
		m.statusMsg = "Run already in progress"
		return nil
	}
	m.running = true
	m.statusMsg = fmt.Sprintf("Running %s...", scn.Name)
	return m.startRun(scn)
}

func (m *Model) startRun(scn config.Scenario) tea.Cmd {
	return func() tea.Msg {
		res, err := sim.NewRunner(scn, m.logger).Run(context.Background())
		if err != nil {
			return runFailedMsg{err: err}
		}
		return runCompletedMsg{res: res}
	}
}

func (m *Model) handleRunCompleted(res *sim.Result) {
	m.running = false

	summary := report.Summarize(res)
	m.chartPanel.SetResult(res)
	m.tradersPanel.SetTraders(summary.Traders)
	m.chartPanel.SetTraderIndex(m.tradersPanel.SelectedIndex())
	m.summaryPanel.AddRun(summary)

	m.statusMsg = fmt.Sprintf("✓ %s done: price %s, P&L %s",
		res.Name,
		decimal.NewFromFloat(res.FinalPrice()).StringFixed(2),
		decimal.NewFromFloat(res.FinalProfitLoss()).StringFixed(2))
}

// runCompletedMsg is sent when a simulation run finishes.
type runCompletedMsg struct {
	res *sim.Result
}

// runFailedMsg is sent when a simulation run fails.
type runFailedMsg struct {
	err error
}
