// Package config loads and validates simulation scenarios.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dealersim/internal/engine"
)

var (
	ErrInvalidSteps  = errors.New("steps must be at least 1")
	ErrInvalidPrice  = errors.New("initial price must be positive")
	ErrInvalidImpact = errors.New("impact factor must be within [0, 1]")
	ErrInvalidRisk   = errors.New("inventory risk must be within [0, 0.5]")
	ErrNoTraders     = errors.New("at least one trader is required")
	ErrInvalidCount  = errors.New("trader count must be positive")
)

// TraderSpec declares a group of traders sharing one strategy.
type TraderSpec struct {
	// Strategy selects the order flow: buy, sell, random or neutral.
	// Unknown values trade as neutral.
	Strategy engine.Strategy `yaml:"strategy"`
	// Count is the number of traders in the group.
	Count int `yaml:"count"`
}

// Scenario holds every parameter of a simulation run. Monetary and
// coefficient fields are decimals so scenario files round-trip without
// picking up binary float noise.
type Scenario struct {
	// Name labels the run in logs and reports.
	Name string `yaml:"name"`
	// Seed drives the traders' random draws. Zero means derive a seed
	// from the clock at run time.
	Seed int64 `yaml:"seed"`
	// Steps is the number of simulation steps to run.
	Steps int `yaml:"steps"`
	// InitialPrice is the market maker's opening quote.
	InitialPrice decimal.Decimal `yaml:"initial_price"`
	// InitialInventory is the market maker's opening position.
	InitialInventory decimal.Decimal `yaml:"initial_inventory"`
	// ImpactFactor scales how far a single order moves the quote.
	ImpactFactor decimal.Decimal `yaml:"impact_factor"`
	// InventoryRisk scales how hard the maker skews quotes to shed
	// its position.
	InventoryRisk decimal.Decimal `yaml:"inventory_risk"`
	// Traders lists the trader groups taking part in the run.
	Traders []TraderSpec `yaml:"traders"`
}

// Default returns a Scenario with reasonable defaults.
func Default() Scenario {
	return Scenario{
		Name:             "baseline",
		Steps:            50,
		InitialPrice:     decimal.NewFromInt(100),
		InitialInventory: decimal.Zero,
		ImpactFactor:     decimal.NewFromFloat(0.1),
		InventoryRisk:    decimal.NewFromFloat(0.05),
		Traders: []TraderSpec{
			{Strategy: engine.StrategyRandom, Count: 5},
		},
	}
}

// Load reads a scenario file and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scn := Default()
	if err := yaml.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scn, nil
}

// Validate checks the scenario against the supported parameter ranges.
func (s *Scenario) Validate() error {
	if s.Steps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, s.Steps)
	}
	if !s.InitialPrice.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidPrice, s.InitialPrice)
	}
	if s.ImpactFactor.IsNegative() || s.ImpactFactor.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: got %s", ErrInvalidImpact, s.ImpactFactor)
	}
	if s.InventoryRisk.IsNegative() || s.InventoryRisk.GreaterThan(decimal.NewFromFloat(0.5)) {
		return fmt.Errorf("%w: got %s", ErrInvalidRisk, s.InventoryRisk)
	}
	for _, spec := range s.Traders {
		if spec.Count < 1 {
			return fmt.Errorf("%w: got %d for strategy %q", ErrInvalidCount, spec.Count, spec.Strategy)
		}
	}
	if s.TraderCount() < 1 {
		return ErrNoTraders
	}
	return nil
}

// TraderCount returns the total number of traders across all groups.
func (s *Scenario) TraderCount() int {
	var n int
	for _, spec := range s.Traders {
		n += spec.Count
	}
	return n
}

// Strategies expands the trader groups into one strategy per trader,
// preserving group order.
func (s *Scenario) Strategies() []engine.Strategy {
	out := make([]engine.Strategy, 0, s.TraderCount())
	for _, spec := range s.Traders {
		for i := 0; i < spec.Count; i++ {
			out = append(out, spec.Strategy)
		}
	}
	return out
}
