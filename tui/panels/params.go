package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"dealersim/internal/config"
	"dealersim/internal/engine"
	"dealersim/tui/styles"
)

// ParamField represents the currently focused input field.
type ParamField int

const (
	FieldSteps ParamField = iota
	FieldTraders
	FieldStrategy
	FieldPrice
	FieldInventory
	FieldImpact
	FieldRisk
	FieldSeed
	FieldRun
	fieldCount
)

// ParamsPanel edits the scenario and requests runs.
type ParamsPanel struct {
	inputs     [fieldCount]textinput.Model
	strategies []engine.Strategy

	currentField  ParamField
	strategyIndex int

	name   string
	errMsg string

	focused bool
	width   int
	height  int
}

// NewParamsPanel creates a params panel pre-filled from a scenario.
func NewParamsPanel(scn config.Scenario) *ParamsPanel {
	p := &ParamsPanel{
		strategies:   engine.Strategies(),
		currentField: FieldSteps,
		name:         scn.Name,
	}

	mk := func(f ParamField, placeholder, value string) {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Width = 10
		in.CharLimit = 15
		in.SetValue(value)
		p.inputs[f] = in
	}
	mk(FieldSteps, "steps", strconv.Itoa(scn.Steps))
	mk(FieldTraders, "traders", strconv.Itoa(scn.TraderCount()))
	mk(FieldPrice, "price", scn.InitialPrice.String())
	mk(FieldInventory, "inventory", scn.InitialInventory.String())
	mk(FieldImpact, "impact", scn.ImpactFactor.String())
	mk(FieldRisk, "risk", scn.InventoryRisk.String())
	mk(FieldSeed, "seed", strconv.FormatInt(scn.Seed, 10))

	if len(scn.Traders) > 0 {
		for i, s := range p.strategies {
			if s == scn.Traders[0].Strategy {
				p.strategyIndex = i
			}
		}
	}
	return p
}

// Init initializes the panel.
func (p *ParamsPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *ParamsPanel) Update(msg tea.Msg) (*ParamsPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("down"))):
			p.nextField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("up"))):
			p.prevField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if p.currentField == FieldRun {
				return p, p.Submit()
			}
			p.nextField()
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
			if p.currentField == FieldStrategy && p.strategyIndex > 0 {
				p.strategyIndex--
				return p, nil
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("right"))):
			if p.currentField == FieldStrategy && p.strategyIndex < len(p.strategies)-1 {
				p.strategyIndex++
				return p, nil
			}
		}
	}

	if p.hasInput(p.currentField) {
		p.inputs[p.currentField], cmd = p.inputs[p.currentField].Update(msg)
	}
	return p, cmd
}

// View renders the panel.
func (p *ParamsPanel) View() string {
	var content strings.Builder

	content.WriteString(p.renderField("Steps", FieldSteps))
	content.WriteString("\n")
	content.WriteString(p.renderField("Traders", FieldTraders))
	content.WriteString("\n")
	content.WriteString(p.renderLabel("Strategy", FieldStrategy) + p.renderStrategyField())
	content.WriteString("\n")
	content.WriteString(p.renderField("Price", FieldPrice))
	content.WriteString("\n")
	content.WriteString(p.renderField("Inventory", FieldInventory))
	content.WriteString("\n")
	content.WriteString(p.renderField("Impact", FieldImpact))
	content.WriteString("\n")
	content.WriteString(p.renderField("Risk", FieldRisk))
	content.WriteString("\n")
	content.WriteString(p.renderField("Seed", FieldSeed))
	content.WriteString("\n")

	runStyle := styles.InputStyle
	if p.currentField == FieldRun && p.focused {
		runStyle = styles.FocusedInputStyle.Bold(true).Foreground(styles.PrimaryColor)
	}
	content.WriteString(runStyle.Render("  [ Run ]  "))

	if p.errMsg != "" {
		content.WriteString("\n")
		content.WriteString(styles.ErrorStyle.Render(p.errMsg))
	}

	content.WriteString("\n")
	content.WriteString(p.renderRunSummary())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("⚙ Scenario", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ParamsPanel) renderLabel(label string, field ParamField) string {
	labelStyle := styles.LabelStyle
	if p.currentField == field && p.focused {
		labelStyle = labelStyle.Foreground(styles.PrimaryColor)
	}
	return labelStyle.Render(fmt.Sprintf("%-10s", label))
}

func (p *ParamsPanel) renderField(label string, field ParamField) string {
	return p.renderLabel(label, field) + p.inputs[field].View()
}

func (p *ParamsPanel) renderStrategyField() string {
	var items []string
	for i, s := range p.strategies {
		style := styles.OptionStyle
		if i == p.strategyIndex {
			if p.currentField == FieldStrategy && p.focused {
				style = styles.OptionSelectedStyle
			} else {
				style = styles.OptionStyle.Bold(true)
			}
			style = style.Foreground(styles.StrategyStyle(string(s)).GetForeground())
		}
		items = append(items, style.Render(string(s)))
	}
	return strings.Join(items, "|")
}

func (p *ParamsPanel) renderRunSummary() string {
	scn, err := p.buildScenario()
	if err != nil {
		return ""
	}
	seed := "clock"
	if scn.Seed != 0 {
		seed = strconv.FormatInt(scn.Seed, 10)
	}
	line := fmt.Sprintf("%d steps, %d %s @ %s (k=%s risk=%s seed=%s)",
		scn.Steps, scn.TraderCount(), scn.Traders[0].Strategy,
		scn.InitialPrice, scn.ImpactFactor, scn.InventoryRisk, seed)
	return styles.HeaderStyle.Render("Next: ") + styles.MutedStyle.Render(line)
}

// Submit validates the fields and emits a RunRequestedMsg.
func (p *ParamsPanel) Submit() tea.Cmd {
	scn, err := p.buildScenario()
	if err != nil {
		p.errMsg = err.Error()
		return nil
	}
	p.errMsg = ""
	return func() tea.Msg {
		return RunRequestedMsg{Scenario: scn}
	}
}

func (p *ParamsPanel) buildScenario() (config.Scenario, error) {
	scn := config.Default()
	scn.Name = p.name

	var err error
	if scn.Steps, err = strconv.Atoi(p.value(FieldSteps)); err != nil {
		return scn, fmt.Errorf("steps: %w", err)
	}
	traders, err := strconv.Atoi(p.value(FieldTraders))
	if err != nil {
		return scn, fmt.Errorf("traders: %w", err)
	}
	if scn.Seed, err = strconv.ParseInt(p.value(FieldSeed), 10, 64); err != nil {
		return scn, fmt.Errorf("seed: %w", err)
	}
	if scn.InitialPrice, err = decimal.NewFromString(p.value(FieldPrice)); err != nil {
		return scn, fmt.Errorf("price: %w", err)
	}
	if scn.InitialInventory, err = decimal.NewFromString(p.value(FieldInventory)); err != nil {
		return scn, fmt.Errorf("inventory: %w", err)
	}
	if scn.ImpactFactor, err = decimal.NewFromString(p.value(FieldImpact)); err != nil {
		return scn, fmt.Errorf("impact: %w", err)
	}
	if scn.InventoryRisk, err = decimal.NewFromString(p.value(FieldRisk)); err != nil {
		return scn, fmt.Errorf("risk: %w", err)
	}
	scn.Traders = []config.TraderSpec{
		{Strategy: p.strategies[p.strategyIndex], Count: traders},
	}
	if err := scn.Validate(); err != nil {
		return scn, err
	}
	return scn, nil
}

func (p *ParamsPanel) value(field ParamField) string {
	return strings.TrimSpace(p.inputs[field].Value())
}

func (p *ParamsPanel) hasInput(field ParamField) bool {
	return field != FieldStrategy && field != FieldRun
}

func (p *ParamsPanel) setField(field ParamField) {
	if p.hasInput(p.currentField) {
		p.inputs[p.currentField].Blur()
	}
	p.currentField = field
	if p.hasInput(field) && p.focused {
		p.inputs[field].Focus()
	}
}

func (p *ParamsPanel) nextField() {
	p.setField((p.currentField + 1) % fieldCount)
}

func (p *ParamsPanel) prevField() {
	field := p.currentField - 1
	if field < 0 {
		field = fieldCount - 1
	}
	p.setField(field)
}

// SetFocus sets the focus state of the panel.
func (p *ParamsPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused {
		if p.hasInput(p.currentField) {
			p.inputs[p.currentField].Focus()
		}
		return
	}
	for f := ParamField(0); f < fieldCount; f++ {
		if p.hasInput(f) {
			p.inputs[f].Blur()
		}
	}
}

// SetSize sets the panel dimensions.
func (p *ParamsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// RunRequestedMsg is sent when the user asks for a new run.
type RunRequestedMsg struct {
	Scenario config.Scenario
}
