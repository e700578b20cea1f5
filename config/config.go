// Package config loads the backtest run configuration from a YAML file.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"gopkg.in/yaml.v3"
)

// Supported price data sources.
const (
	SourceCSV     = "csv"
	SourceBinance = "binance"

	defaultKlineLimit = 365
)

// Config is the fully parsed run configuration.
type Config struct {
	BaseCurrency domain.Currency
	MaxStaleness int
	Source       string
	DataDir      string
	KlineLimit   int
	HistoryDir   string
	ExportCSV    string
	Balances     map[string]decimal.Decimal
	Assets       []AssetConfig
	Strategies   []StrategyConfig
}

// AssetConfig describes one tradable asset. Symbol is the exchange ticker
// to fetch klines for and is only required with the binance source.
type AssetConfig struct {
	Asset   domain.Asset
	Symbol  string
	Holding decimal.Decimal
}

// StrategyConfig describes one strategy to register with the engine.
type StrategyConfig struct {
	Asset       string
	Algorithm   string
	Window      int
	ShortPeriod int
	LongPeriod  int
	Seed        int64
	Repetitions int
	Priority    int
	Name        string
	Buy         PolicyConfig
	Sell        PolicyConfig
}

// PolicyConfig describes a quantity policy for one transaction side.
type PolicyConfig struct {
	Policy     string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

type configTmp struct {
	BaseCurrency string            `yaml:"base_currency"`
	MaxStaleness string            `yaml:"max_staleness_days,omitempty"`
	Source       string            `yaml:"source,omitempty"`
	DataDir      string            `yaml:"data_dir"`
	KlineLimit   int               `yaml:"kline_limit,omitempty"`
	HistoryDir   string            `yaml:"history_dir,omitempty"`
	ExportCSV    string            `yaml:"export_csv,omitempty"`
	Balances     map[string]string `yaml:"balances"`
	Assets       []assetTmp        `yaml:"assets"`
	Strategies   []strategyTmp     `yaml:"strategies"`
}

type assetTmp struct {
	Name       string `yaml:"name"`
	Fractional bool   `yaml:"fractional"`
	Symbol     string `yaml:"symbol,omitempty"`
	Holding    string `yaml:"holding,omitempty"`
}

type strategyTmp struct {
	Asset       string    `yaml:"asset"`
	Algorithm   string    `yaml:"algorithm"`
	Window      int       `yaml:"window,omitempty"`
	ShortPeriod int       `yaml:"short_period,omitempty"`
	LongPeriod  int       `yaml:"long_period,omitempty"`
	Seed        int64     `yaml:"seed,omitempty"`
	Repetitions int       `yaml:"repetitions"`
	Priority    int       `yaml:"priority"`
	Name        string    `yaml:"name,omitempty"`
	Buy         policyTmp `yaml:"buy"`
	Sell        policyTmp `yaml:"sell"`
}

type policyTmp struct {
	Policy     string `yaml:"policy"`
	Percentage string `yaml:"percentage,omitempty"`
	Amount     string `yaml:"amount,omitempty"`
}

// Get parses the -config flag and loads the referenced YAML file.
func Get() (*Config, error) {
	path := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	return FromYaml(*path)
}

// FromYaml loads and validates a configuration file.
func FromYaml(path string) (*Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return nil, err
	}

	if tmp.BaseCurrency == "" {
		return nil, fmt.Errorf("'base_currency' param is required in yaml config")
	}

	cfg := &Config{
		BaseCurrency: domain.Currency{Name: tmp.BaseCurrency},
		MaxStaleness: 2,
		Source:       SourceCSV,
		DataDir:      tmp.DataDir,
		KlineLimit:   defaultKlineLimit,
		HistoryDir:   tmp.HistoryDir,
		ExportCSV:    tmp.ExportCSV,
		Balances:     make(map[string]decimal.Decimal, len(tmp.Balances)),
	}

	switch tmp.Source {
	case "", SourceCSV:
	case SourceBinance:
		cfg.Source = SourceBinance
	default:
		return nil, fmt.Errorf("unknown 'source' %q in yaml config (want %q or %q)", tmp.Source, SourceCSV, SourceBinance)
	}

	if tmp.KlineLimit != 0 {
		if tmp.KlineLimit < 1 {
			return nil, fmt.Errorf("'kline_limit' param must be positive, got %d", tmp.KlineLimit)
		}
		cfg.KlineLimit = tmp.KlineLimit
	}

	if tmp.MaxStaleness != "" {
		staleness, err := strconv.Atoi(tmp.MaxStaleness)
		if err != nil {
			return nil, fmt.Errorf("incorrect 'max_staleness_days' param in yaml config (must be an integer), error: %w", err)
		}
		cfg.MaxStaleness = staleness
	}

	for name, balanceStr := range tmp.Balances {
		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, fmt.Errorf("incorrect balance for %q in yaml config, error: %w", name, err)
		}
		cfg.Balances[name] = balance
	}

	for _, a := range tmp.Assets {
		if a.Name == "" {
			return nil, fmt.Errorf("asset without 'name' in yaml config")
		}
		if cfg.Source == SourceBinance && a.Symbol == "" {
			return nil, fmt.Errorf("asset %s needs 'symbol' in yaml config when source is %q", a.Name, SourceBinance)
		}
		holding := decimal.Zero
		if a.Holding != "" {
			holding, err = decimal.NewFromString(a.Holding)
			if err != nil {
				return nil, fmt.Errorf("incorrect 'holding' for asset %s, error: %w", a.Name, err)
			}
		}
		cfg.Assets = append(cfg.Assets, AssetConfig{
			Asset:   domain.Asset{Name: a.Name, AllowsFractional: a.Fractional},
			Symbol:  a.Symbol,
			Holding: holding,
		})
	}

	for i, s := range tmp.Strategies {
		if s.Asset == "" {
			return nil, fmt.Errorf("strategy %d has no 'asset' in yaml config", i)
		}
		if s.Algorithm == "" {
			return nil, fmt.Errorf("strategy %d has no 'algorithm' in yaml config", i)
		}
		if s.Repetitions < 1 {
			return nil, fmt.Errorf("strategy %d needs 'repetitions' >= 1 in yaml config", i)
		}

		buy, err := parsePolicy(s.Buy)
		if err != nil {
			return nil, fmt.Errorf("strategy %d buy policy: %w", i, err)
		}
		sell, err := parsePolicy(s.Sell)
		if err != nil {
			return nil, fmt.Errorf("strategy %d sell policy: %w", i, err)
		}

		cfg.Strategies = append(cfg.Strategies, StrategyConfig{
			Asset:       s.Asset,
			Algorithm:   s.Algorithm,
			Window:      s.Window,
			ShortPeriod: s.ShortPeriod,
			LongPeriod:  s.LongPeriod,
			Seed:        s.Seed,
			Repetitions: s.Repetitions,
			Priority:    s.Priority,
			Name:        s.Name,
			Buy:         buy,
			Sell:        sell,
		})
	}

	return cfg, nil
}

func parsePolicy(tmp policyTmp) (PolicyConfig, error) {
	p := PolicyConfig{Policy: tmp.Policy}

	switch tmp.Policy {
	case "percentage":
		percentage, err := decimal.NewFromString(tmp.Percentage)
		if err != nil {
			return PolicyConfig{}, fmt.Errorf("incorrect 'percentage' param (must be a decimal in [0,1]), error: %w", err)
		}
		if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(1)) {
			return PolicyConfig{}, fmt.Errorf("'percentage' param must be in [0,1], got %s", percentage)
		}
		p.Percentage = percentage
	case "fixed":
		amount, err := decimal.NewFromString(tmp.Amount)
		if err != nil {
			return PolicyConfig{}, fmt.Errorf("incorrect 'amount' param (must be a decimal), error: %w", err)
		}
		p.Amount = amount
	default:
		return PolicyConfig{}, fmt.Errorf("unknown policy %q (want 'percentage' or 'fixed')", tmp.Policy)
	}

	return p, nil
}
