package engine

import (
	"testing"
)

func checkHistories(t *testing.T, mm *MarketMaker, price, inventory, pnl []float64) {
	t.Helper()
	if len(mm.PriceHistory()) != len(price) {
		t.Fatalf("price history length: expected %d, got %d", len(price), len(mm.PriceHistory()))
	}
	for i, want := range price {
		if got := mm.PriceHistory()[i]; got != want {
			t.Errorf("price[%d]: expected %v, got %v", i, want, got)
		}
	}
	for i, want := range inventory {
		if got := mm.InventoryHistory()[i]; got != want {
			t.Errorf("inventory[%d]: expected %v, got %v", i, want, got)
		}
	}
	for i, want := range pnl {
		if got := mm.PnLHistory()[i]; got != want {
			t.Errorf("pnl[%d]: expected %v, got %v", i, want, got)
		}
	}
}

func TestNewMarketMakerSeedsHistories(t *testing.T) {
	mm := NewMarketMaker(100, 2, 0.1, 0.05)

	if mm.Price() != 100 {
		t.Errorf("expected price 100, got %v", mm.Price())
	}
	if mm.Inventory() != 2 {
		t.Errorf("expected inventory 2, got %v", mm.Inventory())
	}
	if mm.ProfitLoss() != 0 {
		t.Errorf("expected zero P&L, got %v", mm.ProfitLoss())
	}
	checkHistories(t, mm, []float64{100}, []float64{2}, []float64{0})
}

func TestExecuteOrderPriceImpact(t *testing.T) {
	// Two offsetting orders at k=0.1: a buy of 5 lifts the quote by 0.5,
	// the following sell of 5 takes it back down.
	mm := NewMarketMaker(100, 0, 0.1, 0)

	mm.ExecuteOrder(5)
	mm.ExecuteOrder(-5)

	checkHistories(t, mm,
		[]float64{100, 100.5, 100},
		[]float64{0, -5, 5},
		[]float64{0, -2.5, -5},
	)
}

func TestExecuteOrderInventoryImpactUsesPriorPosition(t *testing.T) {
	// k=0 isolates the inventory term. The sell of 10 moves nothing (the
	// maker is flat going in) but leaves the maker long 10; the next order
	// then trades against a quote lifted by 0.1*10 = 1.
	mm := NewMarketMaker(100, 0, 0, 0.1)

	mm.ExecuteOrder(-10)
	mm.ExecuteOrder(0)

	checkHistories(t, mm,
		[]float64{100, 100, 101},
		[]float64{0, 10, 10},
		[]float64{0, 0, 0},
	)
}

func TestExecuteOrderCombinedImpacts(t *testing.T) {
	// k and inventoryRisk are powers of two so every intermediate value is
	// exact in float64:
	//   buy 4:  price 10 + 0.5*4            = 12, inventory -4, pnl -4*2  = -8
	//   sell 2: price 12 + 0.5*(-2) + 0.25*(-4) = 10, inventory -2, pnl -8 + 2*(-2) = -12
	mm := NewMarketMaker(10, 0, 0.5, 0.25)

	mm.ExecuteOrder(4)
	mm.ExecuteOrder(-2)

	checkHistories(t, mm,
		[]float64{10, 12, 10},
		[]float64{0, -4, -2},
		[]float64{0, -8, -12},
	)
}

func TestExecuteOrderPnLIdentity(t *testing.T) {
	// For every executed order s: Δpnl == -s * Δprice. Power-of-two
	// coefficients keep the identity exact rather than approximate.
	mm := NewMarketMaker(100, 0, 0.5, 0.25)

	orders := []float64{3, -7, 2, 0, -1, 5, -5, 10}
	for _, s := range orders {
		pnlBefore := mm.ProfitLoss()
		priceBefore := mm.Price()

		mm.ExecuteOrder(s)

		wantDelta := -s * (mm.Price() - priceBefore)
		if got := mm.ProfitLoss() - pnlBefore; got != wantDelta {
			t.Fatalf("order %v: expected Δpnl %v, got %v", s, wantDelta, got)
		}
	}
}

func TestExecuteOrderHistoriesGrowTogether(t *testing.T) {
	mm := NewMarketMaker(50, 0, 0.1, 0.05)

	for i := 0; i < 25; i++ {
		mm.ExecuteOrder(float64(i%7) - 3)

		n := len(mm.PriceHistory())
		if n != i+2 {
			t.Fatalf("after order %d: expected history length %d, got %d", i, i+2, n)
		}
		if len(mm.InventoryHistory()) != n || len(mm.PnLHistory()) != n {
			t.Fatalf("after order %d: history lengths diverged: %d/%d/%d",
				i, n, len(mm.InventoryHistory()), len(mm.PnLHistory()))
		}
	}
}

func TestAdjustPriceAllowsNegativePrice(t *testing.T) {
	// Extreme inputs may push the quote below zero; that is accepted
	// input-domain behavior, not an error.
	mm := NewMarketMaker(1, 0, 1, 0)

	mm.ExecuteOrder(-10)

	if mm.Price() != -9 {
		t.Errorf("expected price -9, got %v", mm.Price())
	}
}
