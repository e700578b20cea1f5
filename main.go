package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/vadiminshakov/replay/config"
	"github.com/vadiminshakov/replay/internal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/render"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/internal/services/marketdata"
	"github.com/vadiminshakov/replay/internal/services/report"
	"github.com/vadiminshakov/replay/internal/services/simulation"
	"github.com/vadiminshakov/replay/internal/storage/history"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	series, err := loadSeries(cfg)
	if err != nil {
		logger.Fatal("failed to load price data", zap.String("source", cfg.Source), zap.Error(err))
	}
	if len(series) == 0 {
		logger.Fatal("no price series found", zap.String("source", cfg.Source))
	}

	engine, _, err := internal.BuildEngine(cfg, series, logger)
	if err != nil {
		logger.Fatal("failed to build simulation", zap.Error(err))
	}

	if err := engine.Run(); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	if cfg.HistoryDir != "" {
		if err := persistHistory(engine.History(), filepath.Join(cfg.HistoryDir, runID)); err != nil {
			logger.Error("failed to persist history", zap.Error(err))
		}
	}

	if cfg.ExportCSV != "" {
		if err := exportCSV(engine.History(), cfg.ExportCSV); err != nil {
			logger.Error("failed to export history", zap.Error(err))
		}
	}

	rep, err := report.Generate(engine.History())
	if err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}

	fmt.Println(render.Report(rep))
}

func loadSeries(cfg *config.Config) (map[domain.Asset]market.Series, error) {
	if cfg.Source == config.SourceBinance {
		provider := marketdata.NewBinanceProvider(binance.NewClient("", ""))

		ctx := context.Background()
		series := make(map[domain.Asset]market.Series, len(cfg.Assets))
		for _, a := range cfg.Assets {
			s, err := provider.LoadSeries(ctx, a.Symbol, cfg.KlineLimit)
			if err != nil {
				return nil, err
			}
			series[a.Asset] = s
		}
		return series, nil
	}

	assets := make([]domain.Asset, 0, len(cfg.Assets))
	for _, a := range cfg.Assets {
		assets = append(assets, a.Asset)
	}
	return marketdata.LoadCSVDir(cfg.DataDir, assets)
}

func persistHistory(updates []simulation.WalletUpdate, dir string) error {
	store, err := history.NewStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.AppendAll(updates)
}

func exportCSV(updates []simulation.WalletUpdate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WriteCSV(f, updates)
}
