// Package sim assembles a market from a scenario and runs it to completion.
package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"dealersim/internal/config"
	"dealersim/internal/engine"
)

// Runner builds and runs one simulation per call to Run. It is safe to
// call Run repeatedly; every call starts from a fresh market.
type Runner struct {
	scn    config.Scenario
	logger *slog.Logger
}

// NewRunner creates a Runner for the given scenario.
func NewRunner(scn config.Scenario, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{scn: scn, logger: logger}
}

// Run executes the scenario and returns a snapshot of the finished
// market. The context is checked between steps, so cancellation leaves
// no partially applied step behind; a cancelled run returns the
// snapshot of the steps completed so far alongside ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	seed := r.scn.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		r.logger.Info("derived seed from clock", "seed", seed)
	}

	initialPrice := r.scn.InitialPrice.InexactFloat64()
	initialInventory := r.scn.InitialInventory.InexactFloat64()
	impactFactor := r.scn.ImpactFactor.InexactFloat64()
	inventoryRisk := r.scn.InventoryRisk.InexactFloat64()

	maker := engine.NewMarketMaker(initialPrice, initialInventory, impactFactor, inventoryRisk)

	for _, spec := range r.scn.Traders {
		if !spec.Strategy.Known() {
			r.logger.Warn("unknown strategy trades as neutral", "strategy", spec.Strategy)
		}
	}

	strategies := r.scn.Strategies()
	traders := make([]*engine.Trader, len(strategies))
	for i, strat := range strategies {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		traders[i] = engine.NewTrader(engine.TraderID(i+1), strat, rng)
	}

	market := engine.NewMarket(maker, traders)

	r.logger.Info("starting run",
		"scenario", r.scn.Name,
		"seed", seed,
		"steps", r.scn.Steps,
		"traders", len(traders),
		"initial_price", initialPrice,
		"impact_factor", impactFactor,
		"inventory_risk", inventoryRisk,
	)

	start := time.Now()
	for step := 0; step < r.scn.Steps; step++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run cancelled",
				"scenario", r.scn.Name, "completed_steps", market.TimeSteps())
			res := snapshotResult(market, r.scn.Name, seed, time.Since(start),
				initialPrice, initialInventory, impactFactor, inventoryRisk)
			return res, err
		}
		market.SimulateStep()
	}
	elapsed := time.Since(start)

	res := snapshotResult(market, r.scn.Name, seed, elapsed,
		initialPrice, initialInventory, impactFactor, inventoryRisk)

	r.logger.Info("run complete",
		"run_id", res.RunID,
		"scenario", res.Name,
		"final_price", res.FinalPrice(),
		"final_inventory", res.FinalInventory(),
		"final_pnl", res.FinalProfitLoss(),
		"elapsed", elapsed,
	)
	return res, nil
}
