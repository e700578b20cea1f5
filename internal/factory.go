// Package internal wires configuration into a runnable simulation.
package internal

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/replay/config"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/internal/services/simulation"
	"github.com/vadiminshakov/replay/internal/services/strategy"
	"github.com/vadiminshakov/replay/internal/services/wallet"
	"go.uber.org/zap"
)

// BuildEngine assembles the wallet, strategies and engine from the parsed
// configuration and the loaded per-asset series. This is the single point
// of truth for mapping config names to concrete implementations.
func BuildEngine(
	cfg *config.Config,
	series map[domain.Asset]market.Series,
	logger *zap.Logger,
) (*simulation.Engine, *wallet.Wallet, error) {
	timeline := market.NewTimeline(series)

	w := wallet.NewWallet(cfg.BaseCurrency)
	for name, balance := range cfg.Balances {
		w.Deposit(domain.Currency{Name: name}, balance)
	}

	assets := make(map[string]domain.Asset, len(cfg.Assets))
	for _, a := range cfg.Assets {
		assets[a.Asset.Name] = a.Asset
		w.AddAsset(a.Asset, a.Holding)
	}

	strategies := make([]*strategy.Strategy, 0, len(cfg.Strategies))
	for i, sc := range cfg.Strategies {
		asset, ok := assets[sc.Asset]
		if !ok {
			return nil, nil, errors.Errorf("strategy %d references unknown asset %q", i, sc.Asset)
		}

		algorithm, err := buildAlgorithm(sc)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "strategy %d", i)
		}

		buyPolicy, err := buildPolicy(sc.Buy)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "strategy %d buy policy", i)
		}
		sellPolicy, err := buildPolicy(sc.Sell)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "strategy %d sell policy", i)
		}

		strategies = append(strategies, strategy.NewStrategy(
			algorithm,
			asset,
			sc.Priority,
			strategy.NewRepeatedPredictions(sc.Repetitions),
			buyPolicy,
			sellPolicy,
			sc.Name,
		))
	}

	engine := simulation.NewEngine(timeline, strategies, w, cfg.MaxStaleness, logger)
	return engine, w, nil
}

func buildAlgorithm(sc config.StrategyConfig) (strategy.Algorithm, error) {
	switch sc.Algorithm {
	case "steady":
		if sc.Window < 2 {
			return nil, fmt.Errorf("'steady' algorithm needs 'window' >= 2")
		}
		return strategy.NewSteadyTrend(sc.Window), nil
	case "majority":
		if sc.Window < 2 {
			return nil, fmt.Errorf("'majority' algorithm needs 'window' >= 2")
		}
		return strategy.NewMajorityTrend(sc.Window), nil
	case "random":
		return strategy.NewRandomWalk(rand.New(rand.NewSource(sc.Seed))), nil
	case "emacross":
		if sc.ShortPeriod < 1 || sc.LongPeriod <= sc.ShortPeriod {
			return nil, fmt.Errorf("'emacross' algorithm needs 0 < short_period < long_period")
		}
		return strategy.NewEMACross(sc.ShortPeriod, sc.LongPeriod), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", sc.Algorithm)
	}
}

func buildPolicy(pc config.PolicyConfig) (strategy.QuantityPolicy, error) {
	switch pc.Policy {
	case "percentage":
		return strategy.NewWalletPercentage(pc.Percentage), nil
	case "fixed":
		return strategy.NewFixedAmount(pc.Amount), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", pc.Policy)
	}
}
