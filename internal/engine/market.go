package engine

// Market drives the single-dealer simulation: one maker quoting against an
// ordered set of traders. It is deterministic given the traders' seeds and
// has no goroutines, mutexes, channels, or time calls. A Market owns its
// maker and traders exclusively for the lifetime of one run.
type Market struct {
	maker     *MarketMaker
	traders   []*Trader
	timeSteps int
}

// NewMarket wires a maker and traders into a market. The slice order is the
// activation order on every step and must not change afterwards. An empty
// trader set is legal; steps then only advance the counter.
func NewMarket(maker *MarketMaker, traders []*Trader) *Market {
	return &Market{
		maker:   maker,
		traders: traders,
	}
}

// SimulateStep advances the market one tick. Each trader in activation
// order decides an order, the maker executes it, and the trader records the
// post-impact price. A trader's full decide/execute/record sequence
// completes before the next trader acts, so later traders trade against the
// price already moved by earlier ones in the same step.
func (m *Market) SimulateStep() {
	m.timeSteps++
	for _, t := range m.traders {
		size := t.DecideOrder()
		m.maker.ExecuteOrder(size)
		t.RecordTrade(size, m.maker.Price())
	}
}

// Run executes steps sequential ticks. There is no early termination or
// partial-step state; callers wanting cancellation stop calling between
// steps.
func (m *Market) Run(steps int) {
	for i := 0; i < steps; i++ {
		m.SimulateStep()
	}
}

// Maker returns the market's dealer.
func (m *Market) Maker() *MarketMaker { return m.maker }

// Traders returns the traders in activation order; callers must not modify
// the slice.
func (m *Market) Traders() []*Trader { return m.traders }

// TimeSteps returns the number of completed steps.
func (m *Market) TimeSteps() int { return m.timeSteps }
