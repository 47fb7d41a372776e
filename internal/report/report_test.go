package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealersim/internal/engine"
	"dealersim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		RunID:        uuid.New(),
		Name:         "unit",
		Seed:         7,
		Steps:        2,
		InitialPrice: 100,
		Price:        []float64{100, 100.5, 100},
		Inventory:    []float64{0, -5, 0},
		ProfitLoss:   []float64{0, -2.5, -5},
		Traders: []sim.TraderResult{
			{
				ID:          1,
				Strategy:    engine.StrategyBuy,
				Orders:      []float64{5, -5},
				TradePrices: []float64{100.5, 100},
				Inventory:   0,
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testResult())

	assert.Equal(t, "unit", s.Name)
	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, 2, s.Steps)
	assert.Equal(t, 1, s.TraderCount)

	assert.Equal(t, "100.00", s.InitialPrice.StringFixed(2))
	assert.Equal(t, "100.00", s.FinalPrice.StringFixed(2))
	assert.Equal(t, "100.00", s.MinPrice.StringFixed(2))
	assert.Equal(t, "100.50", s.MaxPrice.StringFixed(2))
	assert.Equal(t, "-5.00", s.FinalProfitLoss.StringFixed(2))
	assert.Equal(t, "-5.00", s.MinProfitLoss.StringFixed(2))

	require.Len(t, s.Traders, 1)
	tr := s.Traders[0]
	assert.Equal(t, "1", tr.ID)
	assert.Equal(t, "buy", tr.Strategy)
	assert.Equal(t, "0.00", tr.NetPosition.StringFixed(2))
	assert.Equal(t, "10.00", tr.Volume.StringFixed(2))
	// (5*100.5 + 5*100) / 10
	assert.Equal(t, "100.25", tr.AvgPrice.StringFixed(2))
}

func TestSummarizeIdleTraderHasNoAvgPrice(t *testing.T) {
	res := testResult()
	res.Traders = []sim.TraderResult{
		{ID: 1, Strategy: engine.StrategyNeutral, Orders: []float64{0, 0}, TradePrices: []float64{100, 100}},
	}

	s := Summarize(res)
	require.Len(t, s.Traders, 1)
	assert.True(t, s.Traders[0].AvgPrice.IsZero())
	assert.Contains(t, s.Render(), "-")
}

func TestRender(t *testing.T) {
	out := Summarize(testResult()).Render()

	assert.Contains(t, out, "unit")
	assert.Contains(t, out, "Seed     7")
	assert.Contains(t, out, "100.00 -> 100.00")
	assert.Contains(t, out, "Avg Price")
	assert.Contains(t, out, "100.25")
}

func TestLineChart(t *testing.T) {
	values := []float64{100, 101, 99, 102, 98, 100}
	out := LineChart(values, 40, 10)

	lines := strings.Split(out, "\n")
	// 10 chart rows, a border row and the index axis.
	require.Len(t, lines, 12)
	assert.Contains(t, out, "•")
	assert.Contains(t, out, "│")
	assert.Contains(t, out, "┴")
	// First and last source indices appear on the axis.
	assert.Contains(t, lines[11], "0")
	assert.Contains(t, lines[11], "5")
}

func TestLineChartFlatSeries(t *testing.T) {
	out := LineChart([]float64{5, 5, 5, 5}, 30, 6)
	assert.Contains(t, out, "•")
}

func TestLineChartEmptySeries(t *testing.T) {
	assert.Empty(t, LineChart(nil, 40, 10))
}

func TestLineChartDownsamplesLongSeries(t *testing.T) {
	values := make([]float64, 500)
	for i := range values {
		values[i] = float64(i % 20)
	}
	out := LineChart(values, 60, 8)

	lines := strings.Split(out, "\n")
	// 60 wide leaves 50 columns after the axis.
	assert.Len(t, []rune(lines[0]), 10+50)
	// Axis ends at the last source index.
	assert.Contains(t, lines[len(lines)-1], "499")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"order", "step", "price", "inventory", "profit_loss"}, rows[0])
	assert.Equal(t, []string{"0", "0", "100", "0", "0"}, rows[1])
	assert.Equal(t, []string{"1", "1", "100.5", "-5", "-2.5"}, rows[2])
	assert.Equal(t, []string{"2", "2", "100", "0", "-5"}, rows[3])
}

func TestWriteTraderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTraderCSV(&buf, testResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"trader", "strategy", "step", "order", "trade_price"}, rows[0])
	assert.Equal(t, []string{"1", "buy", "1", "5", "100.5"}, rows[1])
	assert.Equal(t, []string{"1", "buy", "2", "-5", "100"}, rows[2])
}
