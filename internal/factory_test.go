package internal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/replay/config"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
)

func sampleSeries(asset domain.Asset) map[domain.Asset]market.Series {
	return map[domain.Asset]market.Series{
		asset: {
			{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(10)},
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(11)},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(12)},
		},
	}
}

func fixedPolicy(amount string) config.PolicyConfig {
	return config.PolicyConfig{Policy: "fixed", Amount: decimal.RequireFromString(amount)}
}

func TestBuildEngine(t *testing.T) {
	btc := domain.Asset{Name: "BTC", AllowsFractional: true}

	cfg := &config.Config{
		BaseCurrency: domain.Currency{Name: "USD"},
		MaxStaleness: 2,
		Balances:     map[string]decimal.Decimal{"USD": decimal.NewFromInt(1000)},
		Assets:       []config.AssetConfig{{Asset: btc, Holding: decimal.Zero}},
		Strategies: []config.StrategyConfig{
			{
				Asset:       "BTC",
				Algorithm:   "steady",
				Window:      2,
				Repetitions: 1,
				Priority:    1,
				Buy:         fixedPolicy("100"),
				Sell:        fixedPolicy("100"),
			},
		},
	}

	engine, w, err := BuildEngine(cfg, sampleSeries(btc), nil)
	require.NoError(t, err)
	require.NotNil(t, engine)

	assert.True(t, w.Amount("USD").Equal(decimal.NewFromInt(1000)))
	assert.True(t, w.Amount("BTC").Equal(decimal.Zero))

	// the rising series triggers at least one buy
	require.NoError(t, engine.Run())
	require.NotEmpty(t, engine.History())
}

func TestBuildEngine_AllAlgorithms(t *testing.T) {
	btc := domain.Asset{Name: "BTC", AllowsFractional: true}

	base := config.StrategyConfig{
		Asset:       "BTC",
		Repetitions: 1,
		Priority:    1,
		Buy:         fixedPolicy("10"),
		Sell:        fixedPolicy("10"),
	}

	tests := []struct {
		name   string
		mutate func(*config.StrategyConfig)
	}{
		{"steady", func(s *config.StrategyConfig) { s.Algorithm = "steady"; s.Window = 2 }},
		{"majority", func(s *config.StrategyConfig) { s.Algorithm = "majority"; s.Window = 3 }},
		{"random", func(s *config.StrategyConfig) { s.Algorithm = "random"; s.Seed = 7 }},
		{"emacross", func(s *config.StrategyConfig) { s.Algorithm = "emacross"; s.ShortPeriod = 2; s.LongPeriod = 3 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc := base
			tc.mutate(&sc)

			cfg := &config.Config{
				BaseCurrency: domain.Currency{Name: "USD"},
				MaxStaleness: 2,
				Assets:       []config.AssetConfig{{Asset: btc, Holding: decimal.Zero}},
				Strategies:   []config.StrategyConfig{sc},
			}

			_, _, err := BuildEngine(cfg, sampleSeries(btc), nil)
			require.NoError(t, err)
		})
	}
}

func TestBuildEngine_UnknownAsset(t *testing.T) {
	btc := domain.Asset{Name: "BTC", AllowsFractional: true}

	cfg := &config.Config{
		BaseCurrency: domain.Currency{Name: "USD"},
		Strategies: []config.StrategyConfig{
			{
				Asset:       "DOGE",
				Algorithm:   "steady",
				Window:      2,
				Repetitions: 1,
				Buy:         fixedPolicy("10"),
				Sell:        fixedPolicy("10"),
			},
		},
	}

	_, _, err := BuildEngine(cfg, sampleSeries(btc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOGE")
}

func TestBuildEngine_UnknownAlgorithm(t *testing.T) {
	btc := domain.Asset{Name: "BTC", AllowsFractional: true}

	cfg := &config.Config{
		BaseCurrency: domain.Currency{Name: "USD"},
		Assets:       []config.AssetConfig{{Asset: btc, Holding: decimal.Zero}},
		Strategies: []config.StrategyConfig{
			{
				Asset:       "BTC",
				Algorithm:   "astrology",
				Repetitions: 1,
				Buy:         fixedPolicy("10"),
				Sell:        fixedPolicy("10"),
			},
		},
	}

	_, _, err := BuildEngine(cfg, sampleSeries(btc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "astrology")
}
