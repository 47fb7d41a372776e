package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"dealersim/internal/config"
	"dealersim/internal/engine"
	"dealersim/internal/logging"
	"dealersim/internal/report"
	"dealersim/internal/sim"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to a scenario yaml file (empty runs the built-in baseline)")
		steps        = flag.Int("steps", 0, "override the number of steps")
		seed         = flag.Int64("seed", 0, "override the seed (0 derives one from the clock)")
		traders      = flag.Int("traders", 0, "override the trader count with a single group")
		strategy     = flag.String("strategy", "", "strategy for the -traders group: buy, sell, random or neutral")
		price        = flag.Float64("price", 0, "override the initial price")
		inventory    = flag.Float64("inventory", 0, "override the initial inventory")
		impact       = flag.Float64("impact", 0, "override the impact factor")
		risk         = flag.Float64("inventory-risk", 0, "override the inventory risk")
		chart        = flag.Bool("chart", false, "render a price chart after the run")
		csvPath      = flag.String("csv", "", "write the maker series to this CSV file")
		traderCSV    = flag.String("trader-csv", "", "write per-trader orders to this CSV file")
		logLevel     = flag.String("log-level", "info", "log level: debug, info, warn or error")
		logDir       = flag.String("log-dir", "logs", "directory for rotated log files")
	)
	flag.Parse()

	logger := logging.New(logging.Options{Level: *logLevel, Dir: *logDir})
	slog.SetDefault(logger)

	scn, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["steps"] {
		scn.Steps = *steps
	}
	if set["seed"] {
		scn.Seed = *seed
	}
	if set["traders"] || set["strategy"] {
		group := config.TraderSpec{Strategy: engine.StrategyRandom, Count: scn.TraderCount()}
		if set["traders"] {
			group.Count = *traders
		}
		if set["strategy"] {
			group.Strategy = engine.Strategy(*strategy)
		}
		scn.Traders = []config.TraderSpec{group}
	}
	if set["price"] {
		scn.InitialPrice = decimal.NewFromFloat(*price)
	}
	if set["inventory"] {
		scn.InitialInventory = decimal.NewFromFloat(*inventory)
	}
	if set["impact"] {
		scn.ImpactFactor = decimal.NewFromFloat(*impact)
	}
	if set["inventory-risk"] {
		scn.InventoryRisk = decimal.NewFromFloat(*risk)
	}

	if err := scn.Validate(); err != nil {
		logger.Error("invalid scenario", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	res, err := sim.NewRunner(*scn, logger).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("run cancelled")
			os.Exit(130)
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(report.Summarize(res).Render())

	if *chart {
		fmt.Println()
		fmt.Println(report.LineChart(res.Price, 80, 16))
	}

	if *csvPath != "" {
		if err := writeCSVFile(*csvPath, res, report.WriteCSV); err != nil {
			logger.Error("failed to write csv", "path", *csvPath, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote maker series", "path", *csvPath)
	}
	if *traderCSV != "" {
		if err := writeCSVFile(*traderCSV, res, report.WriteTraderCSV); err != nil {
			logger.Error("failed to write trader csv", "path", *traderCSV, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote trader orders", "path", *traderCSV)
	}
}

func loadScenario(path string) (*config.Scenario, error) {
	if path == "" {
		scn := config.Default()
		return &scn, nil
	}
	return config.Load(path)
}

func writeCSVFile(path string, res *sim.Result, write func(w io.Writer, res *sim.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
