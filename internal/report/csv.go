package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"dealersim/internal/sim"
)

// WriteCSV writes the maker series as CSV, one row per executed order
// plus the opening row. Values keep full float precision so the file
// round-trips exactly.
func WriteCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"order", "step", "price", "inventory", "profit_loss"}); err != nil {
		return err
	}

	perStep := len(res.Traders)
	for i := range res.Price {
		step := 0
		if i > 0 && perStep > 0 {
			step = (i-1)/perStep + 1
		}
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(step),
			formatFloat(res.Price[i]),
			formatFloat(res.Inventory[i]),
			formatFloat(res.ProfitLoss[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTraderCSV writes every trader's orders and trade prices as CSV,
// one row per order.
func WriteTraderCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"trader", "strategy", "step", "order", "trade_price"}); err != nil {
		return err
	}

	for _, tr := range res.Traders {
		for i, size := range tr.Orders {
			row := []string{
				tr.ID.String(),
				string(tr.Strategy),
				strconv.Itoa(i + 1),
				formatFloat(size),
				formatFloat(tr.TradePrices[i]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
