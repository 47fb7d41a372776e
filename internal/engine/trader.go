package engine

import "math/rand"

// Trader submits one order per market step according to a fixed strategy.
// Each trader carries its own *rand.Rand so runs are reproducible without
// global state; the generator is the engine's only nondeterminism source.
type Trader struct {
	id       TraderID
	strategy Strategy
	rng      *rand.Rand

	orderHistory      []float64 // one entry per DecideOrder call
	tradePriceHistory []float64 // one entry per RecordTrade call
	inventory         float64   // running sum of own orders
}

// NewTrader creates a trader with the given strategy and random source.
// A nil rng falls back to a fixed-seed source so construction stays total;
// callers wanting reproducible runs pass their own seeded generator.
func NewTrader(id TraderID, strategy Strategy, rng *rand.Rand) *Trader {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Trader{
		id:       id,
		strategy: strategy,
		rng:      rng,
	}
}

// DecideOrder draws a signed order size from the strategy's distribution,
// records it, and returns it. Buyers draw from [1,10], sellers from
// [-10,-1], random traders from [-10,10]; any other strategy always
// produces 0. The zero order is still recorded.
func (t *Trader) DecideOrder() float64 {
	var size float64
	switch t.strategy {
	case StrategyBuy:
		size = float64(1 + t.rng.Intn(10))
	case StrategySell:
		size = -float64(1 + t.rng.Intn(10))
	case StrategyRandom:
		size = float64(t.rng.Intn(21) - 10)
	default:
		size = 0
	}
	t.orderHistory = append(t.orderHistory, size)
	return size
}

// RecordTrade books the quoted price and applies the order to the trader's
// own inventory. Pure bookkeeping: pairing with the matching DecideOrder
// call is the orchestrator's responsibility.
func (t *Trader) RecordTrade(orderSize, price float64) {
	t.tradePriceHistory = append(t.tradePriceHistory, price)
	t.inventory += orderSize
}

// ID returns the trader's identifier.
func (t *Trader) ID() TraderID { return t.id }

// Strategy returns the strategy the trader was constructed with, including
// unrecognized values.
func (t *Trader) Strategy() Strategy { return t.strategy }

// Inventory returns the trader's signed position, the sum of its orders.
func (t *Trader) Inventory() float64 { return t.inventory }

// OrderHistory returns the live backing slice; callers must not modify it.
func (t *Trader) OrderHistory() []float64 { return t.orderHistory }

// TradePriceHistory returns the live backing slice; callers must not modify it.
func (t *Trader) TradePriceHistory() []float64 { return t.tradePriceHistory }
