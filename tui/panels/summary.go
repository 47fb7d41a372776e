package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dealersim/internal/report"
	"dealersim/tui/styles"
)

// SummaryPanel keeps a history of finished runs and shows details for
// the selected one.
type SummaryPanel struct {
	runs          []runEntry
	selectedIndex int
	scrollOffset  int
	maxRuns       int

	focused bool
	width   int
	height  int
}

type runEntry struct {
	summary report.Summary
	at      time.Time
}

// NewSummaryPanel creates a new summary panel.
func NewSummaryPanel() *SummaryPanel {
	return &SummaryPanel{
		maxRuns: 50,
	}
}

// Init initializes the panel.
func (p *SummaryPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *SummaryPanel) Update(msg tea.Msg) (*SummaryPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.runs)-1 {
				p.selectedIndex++
				visible := p.visibleRows()
				if p.selectedIndex >= p.scrollOffset+visible {
					p.scrollOffset = p.selectedIndex - visible + 1
				}
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *SummaryPanel) View() string {
	var content strings.Builder

	if len(p.runs) == 0 {
		content.WriteString(p.renderIntro())
	} else {
		visible := p.visibleRows()
		start := p.scrollOffset
		end := start + visible
		if end > len(p.runs) {
			end = len(p.runs)
		}

		for i := start; i < end; i++ {
			entry := p.runs[i]
			s := entry.summary

			pnlStyle := styles.PriceUpStyle
			if s.FinalProfitLoss.IsNegative() {
				pnlStyle = styles.PriceDownStyle
			}
			line := fmt.Sprintf("%s %-10s %s",
				styles.TimeStyle.Render(entry.at.Format("15:04:05")),
				s.Name,
				pnlStyle.Render("pnl "+s.FinalProfitLoss.StringFixed(2)))

			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}
			content.WriteString(line)
			content.WriteString("\n")
		}

		content.WriteString(p.renderDetail())
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📋 Runs", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *SummaryPanel) renderIntro() string {
	intro := strings.Join([]string{
		"Press r (or the form's Run button) to simulate.",
		"",
		"One dealer quotes a single price and takes the other side",
		"of every order. Each fill moves the quote in proportion to",
		"the order size, and the dealer shades the price against its",
		"own position to work inventory back toward flat. Trades",
		"execute at the post-impact quote, so the dealer earns the",
		"impact it charges and pays for the risk it warehouses.",
	}, "\n")
	return styles.MutedStyle.Render(intro)
}

func (p *SummaryPanel) renderDetail() string {
	entry := p.runs[p.selectedIndex]
	s := entry.summary

	var b strings.Builder
	b.WriteString(styles.MutedStyle.Render(strings.Repeat("─", 30)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  seed %d, %d steps, %d traders, %s\n",
		styles.HeaderStyle.Render("Run"), shortID(s.RunID), s.Seed, s.Steps, s.TraderCount, s.Elapsed)
	fmt.Fprintf(&b, "%s %s -> %s  [%s, %s]\n",
		styles.HeaderStyle.Render("Price"),
		s.InitialPrice.StringFixed(2), s.FinalPrice.StringFixed(2),
		s.MinPrice.StringFixed(2), s.MaxPrice.StringFixed(2))
	fmt.Fprintf(&b, "%s inventory %s, P&L %s",
		styles.HeaderStyle.Render("Maker"),
		s.FinalInventory.StringFixed(2), s.FinalProfitLoss.StringFixed(2))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (p *SummaryPanel) visibleRows() int {
	// Leave room for the four detail lines.
	visible := p.height - 9
	if visible < 1 {
		visible = 1
	}
	return visible
}

// SetFocus sets the focus state of the panel.
func (p *SummaryPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *SummaryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// AddRun appends a finished run and selects it.
func (p *SummaryPanel) AddRun(s report.Summary) {
	p.runs = append(p.runs, runEntry{summary: s, at: time.Now()})
	if len(p.runs) > p.maxRuns {
		p.runs = p.runs[len(p.runs)-p.maxRuns:]
	}
	p.selectedIndex = len(p.runs) - 1
	visible := p.visibleRows()
	if p.selectedIndex >= p.scrollOffset+visible {
		p.scrollOffset = p.selectedIndex - visible + 1
	}
}

// SelectedRun returns the currently selected run summary.
func (p *SummaryPanel) SelectedRun() *report.Summary {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.runs) {
		return &p.runs[p.selectedIndex].summary
	}
	return nil
}
