package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealersim/internal/config"
	"dealersim/internal/engine"
)

func testScenario() config.Scenario {
	scn := config.Default()
	scn.Name = "test"
	scn.Seed = 42
	scn.Steps = 20
	scn.Traders = []config.TraderSpec{
		{Strategy: engine.StrategyBuy, Count: 1},
		{Strategy: engine.StrategySell, Count: 1},
		{Strategy: engine.StrategyRandom, Count: 2},
	}
	return scn
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerProducesFullSeries(t *testing.T) {
	scn := testScenario()
	r := NewRunner(scn, testLogger())

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	wantLen := scn.Steps*scn.TraderCount() + 1
	assert.Len(t, res.Price, wantLen)
	assert.Len(t, res.Inventory, wantLen)
	assert.Len(t, res.ProfitLoss, wantLen)

	assert.Equal(t, scn.Steps, res.Steps)
	assert.Equal(t, int64(42), res.Seed)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, "test", res.Name)
	assert.Equal(t, 100.0, res.Price[0])

	require.Len(t, res.Traders, scn.TraderCount())
	for i, tr := range res.Traders {
		assert.Equal(t, engine.TraderID(i+1), tr.ID)
		assert.Len(t, tr.Orders, scn.Steps)
		assert.Len(t, tr.TradePrices, scn.Steps)
		assert.Len(t, tr.InventorySeries, scn.Steps)
		assert.Equal(t, tr.Inventory, tr.InventorySeries[scn.Steps-1])
	}
	assert.Equal(t, engine.StrategyBuy, res.Traders[0].Strategy)
	assert.Equal(t, engine.StrategySell, res.Traders[1].Strategy)

	assert.Equal(t, res.Price[wantLen-1], res.FinalPrice())
	assert.Equal(t, res.Inventory[wantLen-1], res.FinalInventory())
	assert.Equal(t, res.ProfitLoss[wantLen-1], res.FinalProfitLoss())
}

func TestRunnerDeterministicForFixedSeed(t *testing.T) {
	scn := testScenario()

	a, err := NewRunner(scn, testLogger()).Run(context.Background())
	require.NoError(t, err)
	b, err := NewRunner(scn, testLogger()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Price, b.Price)
	assert.Equal(t, a.Inventory, b.Inventory)
	assert.Equal(t, a.ProfitLoss, b.ProfitLoss)
	for i := range a.Traders {
		assert.Equal(t, a.Traders[i].Orders, b.Traders[i].Orders)
	}

	// Same series, but still two distinct runs.
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunnerDerivesSeedWhenZero(t *testing.T) {
	scn := testScenario()
	scn.Seed = 0

	res, err := NewRunner(scn, testLogger()).Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, res.Seed)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewRunner(testScenario(), testLogger()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// Cancelled before the first step: the partial snapshot holds only
	// the seed entries.
	require.NotNil(t, res)
	assert.Zero(t, res.Steps)
	assert.Len(t, res.Price, 1)
	assert.Len(t, res.Inventory, 1)
	assert.Len(t, res.ProfitLoss, 1)
}

func TestRunnerMakerAbsorbsAllTraderFlow(t *testing.T) {
	res, err := NewRunner(testScenario(), testLogger()).Run(context.Background())
	require.NoError(t, err)

	var flow float64
	for _, tr := range res.Traders {
		for _, s := range tr.Orders {
			flow += s
		}
	}
	assert.Equal(t, -flow, res.FinalInventory())
}
