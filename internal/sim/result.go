package sim

import (
	"time"

	"github.com/google/uuid"

	"dealersim/internal/engine"
)

// TraderResult is one trader's complete record of a finished run.
type TraderResult struct {
	ID          engine.TraderID
	Strategy    engine.Strategy
	Orders      []float64
	TradePrices []float64
	// InventorySeries is the trader's running position after each of its
	// orders, i.e. the prefix sums of Orders.
	InventorySeries []float64
	Inventory       float64
}

// Result is an immutable snapshot of a finished run. All series are
// copies, so callers may hold on to a Result while another run mutates
// the engine.
type Result struct {
	RunID uuid.UUID
	Name  string
	// Seed is the seed the run actually used, after clock derivation.
	Seed  int64
	Steps int

	InitialPrice     float64
	InitialInventory float64
	ImpactFactor     float64
	InventoryRisk    float64

	// Maker series, one entry per executed order plus the seed entry.
	Price      []float64
	Inventory  []float64
	ProfitLoss []float64

	Traders []TraderResult
	Elapsed time.Duration
}

// FinalPrice returns the maker's closing quote.
func (r *Result) FinalPrice() float64 {
	return r.Price[len(r.Price)-1]
}

// FinalInventory returns the maker's closing position.
func (r *Result) FinalInventory() float64 {
	return r.Inventory[len(r.Inventory)-1]
}

// FinalProfitLoss returns the maker's closing P&L.
func (r *Result) FinalProfitLoss() float64 {
	return r.ProfitLoss[len(r.ProfitLoss)-1]
}

func snapshotResult(m *engine.Market, name string, seed int64, elapsed time.Duration,
	initialPrice, initialInventory, impactFactor, inventoryRisk float64) *Result {

	mm := m.Maker()
	res := &Result{
		RunID:            uuid.New(),
		Name:             name,
		Seed:             seed,
		Steps:            m.TimeSteps(),
		InitialPrice:     initialPrice,
		InitialInventory: initialInventory,
		ImpactFactor:     impactFactor,
		InventoryRisk:    inventoryRisk,
		Price:            copyFloats(mm.PriceHistory()),
		Inventory:        copyFloats(mm.InventoryHistory()),
		ProfitLoss:       copyFloats(mm.PnLHistory()),
		Elapsed:          elapsed,
	}
	for _, tr := range m.Traders() {
		orders := copyFloats(tr.OrderHistory())
		res.Traders = append(res.Traders, TraderResult{
			ID:              tr.ID(),
			Strategy:        tr.Strategy(),
			Orders:          orders,
			TradePrices:     copyFloats(tr.TradePriceHistory()),
			InventorySeries: prefixSums(orders),
			Inventory:       tr.Inventory(),
		})
	}
	return res
}

func copyFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

func prefixSums(src []float64) []float64 {
	out := make([]float64, len(src))
	var sum float64
	for i, v := range src {
		sum += v
		out[i] = sum
	}
	return out
}
