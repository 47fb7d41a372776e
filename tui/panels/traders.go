package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dealersim/internal/report"
	"dealersim/tui/styles"
)

// TradersPanel lists every trader of the latest run.
type TradersPanel struct {
	traders       []report.TraderLine
	selectedIndex int
	scrollOffset  int

	focused bool
	width   int
	height  int
}

// NewTradersPanel creates a new traders panel.
func NewTradersPanel() *TradersPanel {
	return &TradersPanel{}
}

// Init initializes the panel.
func (p *TradersPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *TradersPanel) Update(msg tea.Msg) (*TradersPanel, tea.Cmd) {
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
			if p.selectedIndex < len(p.traders)-1 {
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
func (p *TradersPanel) View() string {
	var content strings.Builder

	if len(p.traders) == 0 {
		content.WriteString(styles.MutedStyle.Render("No runs yet..."))
	} else {
		header := fmt.Sprintf("%-8s %-10s %10s %10s %10s",
			"Trader", "Strategy", "Net", "Volume", "Avg")
		content.WriteString(styles.HeaderStyle.Render(header))
		content.WriteString("\n")

		visible := p.visibleRows()
		start := p.scrollOffset
		end := start + visible
		if end > len(p.traders) {
			end = len(p.traders)
		}

		for i := start; i < end; i++ {
			tr := p.traders[i]

			avg := "-"
			if !tr.AvgPrice.IsZero() {
				avg = tr.AvgPrice.StringFixed(2)
			}
			strategy := styles.StrategyStyle(tr.Strategy).Render(fmt.Sprintf("%-10s", tr.Strategy))
			row := fmt.Sprintf("%-8s %s %10s %10s %10s",
				tr.ID, strategy,
				tr.NetPosition.StringFixed(2), tr.Volume.StringFixed(2), avg)

			if i == p.selectedIndex && p.focused {
				row = styles.SelectedRowStyle.Render(row)
			} else {
				row = styles.RowStyle.Render(row)
			}
			content.WriteString(row)
			if i < end-1 {
				content.WriteString("\n")
			}
		}

		if len(p.traders) > visible {
			content.WriteString("\n")
			scrollInfo := fmt.Sprintf(" (%d/%d)", p.selectedIndex+1, len(p.traders))
			content.WriteString(styles.MutedStyle.Render(scrollInfo))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("🧑‍💼 Traders", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradersPanel) visibleRows() int {
	visible := p.height - 5
	if visible < 1 {
		visible = 1
	}
	return visible
}

// SetFocus sets the focus state of the panel.
func (p *TradersPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *TradersPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetTraders replaces the listed traders.
func (p *TradersPanel) SetTraders(traders []report.TraderLine) {
	p.traders = traders
	if p.selectedIndex >= len(p.traders) {
		p.selectedIndex = len(p.traders) - 1
		if p.selectedIndex < 0 {
			p.selectedIndex = 0
		}
	}
	if p.scrollOffset > p.selectedIndex {
		p.scrollOffset = p.selectedIndex
	}
}

// SelectedTrader returns the currently selected row.
func (p *TradersPanel) SelectedTrader() *report.TraderLine {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.traders) {
		return &p.traders[p.selectedIndex]
	}
	return nil
}

// SelectedIndex returns the index of the selected row.
func (p *TradersPanel) SelectedIndex() int {
	return p.selectedIndex
}
