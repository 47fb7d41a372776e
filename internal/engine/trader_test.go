package engine

import (
	"math"
	"math/rand"
	"testing"
)

func newTestTrader(id int64, strategy Strategy) *Trader {
	return NewTrader(TraderID(id), strategy, rand.New(rand.NewSource(id)))
}

func TestDecideOrderBounds(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		min, max float64
	}{
		{"buy", StrategyBuy, 1, 10},
		{"sell", StrategySell, -10, -1},
		{"random", StrategyRandom, -10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTrader(1, tt.strategy)
			for i := 0; i < 1000; i++ {
				size := tr.DecideOrder()
				if size < tt.min || size > tt.max {
					t.Fatalf("draw %d: size %v outside [%v, %v]", i, size, tt.min, tt.max)
				}
				if size != math.Trunc(size) {
					t.Fatalf("draw %d: size %v is not a whole number", i, size)
				}
			}
		})
	}
}

func TestDecideOrderNeutralIsFlat(t *testing.T) {
	tr := newTestTrader(1, StrategyNeutral)
	for i := 0; i < 100; i++ {
		if size := tr.DecideOrder(); size != 0 {
			t.Fatalf("draw %d: expected 0, got %v", i, size)
		}
	}
}

func TestDecideOrderUnknownStrategyIsFlat(t *testing.T) {
	// Anything outside the known set behaves like neutral and still
	// records its zero orders.
	tr := newTestTrader(1, Strategy("momentum"))
	for i := 0; i < 10; i++ {
		if size := tr.DecideOrder(); size != 0 {
			t.Fatalf("draw %d: expected 0, got %v", i, size)
		}
	}
	if got := len(tr.OrderHistory()); got != 10 {
		t.Errorf("expected 10 recorded orders, got %d", got)
	}
}

func TestDecideOrderRandomHitsBothSides(t *testing.T) {
	tr := newTestTrader(7, StrategyRandom)
	var sawBuy, sawSell bool
	for i := 0; i < 1000; i++ {
		switch size := tr.DecideOrder(); {
		case size > 0:
			sawBuy = true
		case size < 0:
			sawSell = true
		}
	}
	if !sawBuy || !sawSell {
		t.Errorf("expected both buys and sells in 1000 draws, got buy=%v sell=%v", sawBuy, sawSell)
	}
}

func TestDecideOrderDeterministicAcrossSeeds(t *testing.T) {
	a := NewTrader(1, StrategyRandom, rand.New(rand.NewSource(42)))
	b := NewTrader(2, StrategyRandom, rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		if sa, sb := a.DecideOrder(), b.DecideOrder(); sa != sb {
			t.Fatalf("draw %d: seeds diverged: %v vs %v", i, sa, sb)
		}
	}
}

func TestRecordTradeBookkeeping(t *testing.T) {
	tr := newTestTrader(3, StrategyBuy)

	tr.RecordTrade(5, 100.5)
	tr.RecordTrade(-2, 100.3)

	if got := tr.Inventory(); got != 3 {
		t.Errorf("expected inventory 3, got %v", got)
	}
	prices := tr.TradePriceHistory()
	if len(prices) != 2 || prices[0] != 100.5 || prices[1] != 100.3 {
		t.Errorf("unexpected trade prices: %v", prices)
	}
}

func TestInventoryMatchesOrderHistory(t *testing.T) {
	tr := newTestTrader(11, StrategyRandom)

	for i := 0; i < 500; i++ {
		size := tr.DecideOrder()
		tr.RecordTrade(size, 100)
	}

	var sum float64
	for _, s := range tr.OrderHistory() {
		sum += s
	}
	if got := tr.Inventory(); got != sum {
		t.Errorf("expected inventory %v to equal order sum %v", got, sum)
	}
}
