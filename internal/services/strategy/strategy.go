package strategy

import (
	"fmt"

	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/internal/services/wallet"
)

// Strategy binds one asset to a prediction algorithm, a decision trigger
// and a pair of quantity policies. The prediction log is the only state a
// strategy carries between ticks; it grows by one entry per evaluation and
// is handed to the trigger in full, not as a trailing window.
type Strategy struct {
	algorithm   Algorithm
	asset       domain.Asset
	priority    int
	trigger     Trigger
	buyPolicy   QuantityPolicy
	sellPolicy  QuantityPolicy
	name        string
	predictions []domain.Prediction
}

// NewStrategy creates a strategy. Lower priority values are evaluated
// first. An empty name defaults to "<AlgorithmName>(<AssetName>)".
func NewStrategy(
	algorithm Algorithm,
	asset domain.Asset,
	priority int,
	trigger Trigger,
	buyPolicy QuantityPolicy,
	sellPolicy QuantityPolicy,
	name string,
) *Strategy {
	if name == "" {
		name = fmt.Sprintf("%s(%s)", algorithm.Name(), asset.Name)
	}
	return &Strategy{
		algorithm:  algorithm,
		asset:      asset,
		priority:   priority,
		trigger:    trigger,
		buyPolicy:  buyPolicy,
		sellPolicy: sellPolicy,
		name:       name,
	}
}

// Name returns the strategy name.
func (s *Strategy) Name() string {
	return s.name
}

// Asset returns the asset the strategy trades.
func (s *Strategy) Asset() domain.Asset {
	return s.asset
}

// Priority returns the evaluation priority, lower runs first.
func (s *Strategy) Priority() int {
	return s.priority
}

// Predictions returns a copy of the prediction log.
func (s *Strategy) Predictions() []domain.Prediction {
	log := make([]domain.Prediction, len(s.predictions))
	copy(log, s.predictions)
	return log
}

// Decide turns the asset's visible price history into an optional
// transaction. An empty series produces nothing and leaves the log alone;
// every other call appends exactly one prediction, HOLD included. BUY and
// SELL decisions are stamped with the latest visible close and date and
// sized by the matching quantity policy.
func (s *Strategy) Decide(series market.Series, w *wallet.Wallet) *domain.Transaction {
	if len(series) == 0 {
		return nil
	}

	prediction := s.algorithm.Predict(series)
	s.predictions = append(s.predictions, prediction)

	kind := s.trigger.Evaluate(s.predictions)
	if kind == domain.KindHold {
		return nil
	}

	latest := series[len(series)-1]
	tx := domain.Transaction{
		Kind:         kind,
		Asset:        s.asset,
		Currency:     w.Base(),
		Price:        latest.Close,
		Date:         latest.Date,
		StrategyName: s.name,
	}

	switch kind {
	case domain.KindBuy:
		tx.Quantity = s.buyPolicy.Quantity(w, tx)
	case domain.KindSell:
		tx.Quantity = s.sellPolicy.Quantity(w, tx)
	}

	return &tx
}
