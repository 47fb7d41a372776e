package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"dealersim/internal/report"
	"dealersim/internal/sim"
	"dealersim/tui/styles"
)

// ChartSeries selects which maker series the chart panel draws.
type ChartSeries int

const (
	SeriesPrice ChartSeries = iota
	SeriesInventory
	SeriesPnL
	SeriesTrader
)

var seriesNames = []string{"price", "inventory", "pnl", "trader"}

// ChartPanel draws one series of the latest run: a maker series, or the
// running position of the trader selected in the traders panel.
type ChartPanel struct {
	res       *sim.Result
	series    ChartSeries
	traderIdx int

	focused bool
	width   int
	height  int
}

// NewChartPanel creates a new chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
			if p.series > 0 {
				p.series--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
			if int(p.series) < len(seriesNames)-1 {
				p.series++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content strings.Builder

	content.WriteString(p.renderLegend())
	content.WriteString("\n")

	if p.res == nil {
		content.WriteString(styles.MutedStyle.Render("No runs yet..."))
	} else {
		values := p.values()
		chart := report.LineChart(values, p.width-6, p.height-9)
		content.WriteString(p.trendStyle(values).Render(chart))
		content.WriteString("\n")
		content.WriteString(p.renderStats(values))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📉 Chart - %s", p.seriesName()), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderLegend() string {
	var items []string
	for i, name := range seriesNames {
		style := styles.OptionStyle
		if ChartSeries(i) == p.series {
			if p.focused {
				style = styles.OptionSelectedStyle
			} else {
				style = styles.OptionStyle.Bold(true)
			}
		}
		items = append(items, style.Render(name))
	}
	return strings.Join(items, "|")
}

func (p *ChartPanel) renderStats(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	last := decimal.NewFromFloat(values[len(values)-1]).StringFixed(2)
	line := fmt.Sprintf("last %s  min %s  max %s", last,
		decimal.NewFromFloat(minV).StringFixed(2),
		decimal.NewFromFloat(maxV).StringFixed(2))
	return styles.ChartLabelStyle.Render(line)
}

func (p *ChartPanel) values() []float64 {
	switch p.series {
	case SeriesInventory:
		return p.res.Inventory
	case SeriesPnL:
		return p.res.ProfitLoss
	case SeriesTrader:
		if tr := p.selectedTrader(); tr != nil {
			return tr.InventorySeries
		}
		return nil
	default:
		return p.res.Price
	}
}

func (p *ChartPanel) seriesName() string {
	if p.series == SeriesTrader {
		if tr := p.selectedTrader(); tr != nil {
			return fmt.Sprintf("trader %s position", tr.ID)
		}
	}
	return seriesNames[p.series]
}

func (p *ChartPanel) selectedTrader() *sim.TraderResult {
	if p.res == nil || len(p.res.Traders) == 0 {
		return nil
	}
	idx := p.traderIdx
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.res.Traders) {
		idx = len(p.res.Traders) - 1
	}
	return &p.res.Traders[idx]
}

func (p *ChartPanel) trendStyle(values []float64) lipgloss.Style {
	if len(values) > 0 && values[len(values)-1] < values[0] {
		return styles.ChartDownStyle
	}
	return styles.ChartUpStyle
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetResult replaces the charted run.
func (p *ChartPanel) SetResult(res *sim.Result) {
	p.res = res
}

// SetTraderIndex points the trader series at the given trader row.
func (p *ChartPanel) SetTraderIndex(idx int) {
	p.traderIdx = idx
}
