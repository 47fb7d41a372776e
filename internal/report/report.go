// Package report turns finished runs into human and machine readable
// output. Display values go through decimals so the text report never
// shows binary float noise.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dealersim/internal/sim"
)

// TraderLine is one trader's row in the summary table.
type TraderLine struct {
	ID          string
	Strategy    string
	NetPosition decimal.Decimal
	// Volume is the total absolute size traded.
	Volume decimal.Decimal
	// AvgPrice is the volume weighted average trade price. Zero when
	// the trader never traded.
	AvgPrice decimal.Decimal
}

// Summary condenses a run into the numbers worth reading first.
type Summary struct {
	Name        string
	RunID       string
	Seed        int64
	Steps       int
	TraderCount int

	InitialPrice decimal.Decimal
	FinalPrice   decimal.Decimal
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal

	FinalInventory  decimal.Decimal
	FinalProfitLoss decimal.Decimal
	MinProfitLoss   decimal.Decimal

	Elapsed time.Duration
	Traders []TraderLine
}

// Summarize computes a Summary from a run result.
func Summarize(res *sim.Result) Summary {
	s := Summary{
		Name:            res.Name,
		RunID:           res.RunID.String(),
		Seed:            res.Seed,
		Steps:           res.Steps,
		TraderCount:     len(res.Traders),
		InitialPrice:    decimal.NewFromFloat(res.Price[0]),
		FinalPrice:      decimal.NewFromFloat(res.FinalPrice()),
		FinalInventory:  decimal.NewFromFloat(res.FinalInventory()),
		FinalProfitLoss: decimal.NewFromFloat(res.FinalProfitLoss()),
		Elapsed:         res.Elapsed,
	}

	minPrice, maxPrice := res.Price[0], res.Price[0]
	for _, p := range res.Price {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}
	s.MinPrice = decimal.NewFromFloat(minPrice)
	s.MaxPrice = decimal.NewFromFloat(maxPrice)

	minPnL := res.ProfitLoss[0]
	for _, v := range res.ProfitLoss {
		if v < minPnL {
			minPnL = v
		}
	}
	s.MinProfitLoss = decimal.NewFromFloat(minPnL)

	for _, tr := range res.Traders {
		line := TraderLine{
			ID:          tr.ID.String(),
			Strategy:    string(tr.Strategy),
			NetPosition: decimal.NewFromFloat(tr.Inventory),
		}
		volume := decimal.Zero
		notional := decimal.Zero
		for i, size := range tr.Orders {
			abs := decimal.NewFromFloat(size).Abs()
			volume = volume.Add(abs)
			notional = notional.Add(abs.Mul(decimal.NewFromFloat(tr.TradePrices[i])))
		}
		line.Volume = volume
		if volume.IsPositive() {
			line.AvgPrice = notional.DivRound(volume, 4)
		}
		s.Traders = append(s.Traders, line)
	}
	return s
}

// Render formats the summary as a text block.
func (s Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run      %s (%s)\n", s.RunID, s.Name)
	fmt.Fprintf(&b, "Seed     %d\n", s.Seed)
	fmt.Fprintf(&b, "Steps    %d with %d traders\n", s.Steps, s.TraderCount)
	fmt.Fprintf(&b, "Price    %s -> %s  [min %s, max %s]\n",
		s.InitialPrice.StringFixed(2), s.FinalPrice.StringFixed(2),
		s.MinPrice.StringFixed(2), s.MaxPrice.StringFixed(2))
	fmt.Fprintf(&b, "Maker    inventory %s, P&L %s (lowest %s)\n",
		s.FinalInventory.StringFixed(2), s.FinalProfitLoss.StringFixed(2),
		s.MinProfitLoss.StringFixed(2))
	fmt.Fprintf(&b, "Elapsed  %s\n", s.Elapsed)

	if len(s.Traders) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-8s %-10s %12s %12s %12s\n", "Trader", "Strategy", "Net", "Volume", "Avg Price")
		for _, tr := range s.Traders {
			avg := "-"
			if tr.AvgPrice.IsPositive() || tr.AvgPrice.IsNegative() {
				avg = tr.AvgPrice.StringFixed(2)
			}
			fmt.Fprintf(&b, "%-8s %-10s %12s %12s %12s\n",
				tr.ID, tr.Strategy,
				tr.NetPosition.StringFixed(2), tr.Volume.StringFixed(2), avg)
		}
	}
	return b.String()
}
