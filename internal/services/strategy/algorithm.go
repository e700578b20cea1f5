// Package strategy contains the composable pieces of an automated trading
// strategy: prediction algorithms, decision triggers and quantity policies,
// plus the Strategy type that binds them to a single asset.
package strategy

import (
	"fmt"
	"math/rand"

	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
)

// Algorithm classifies recent price action into a prediction. Predict
// receives the full visible history of the asset and looks only at its own
// trailing window.
type Algorithm interface {
	// Name identifies the algorithm, used in default strategy names.
	Name() string
	// Predict classifies the most recent price action of the series.
	Predict(series market.Series) domain.Prediction
}

// SteadyTrend predicts a direction only when every consecutive close in its
// window moves the same way.
type SteadyTrend struct {
	window int
}

// NewSteadyTrend creates a SteadyTrend over the given window of closes.
func NewSteadyTrend(window int) *SteadyTrend {
	return &SteadyTrend{window: window}
}

// Name identifies the algorithm.
func (a *SteadyTrend) Name() string {
	return fmt.Sprintf("SteadyTrend(%d)", a.window)
}

// Predict returns INCREASE when the window is strictly increasing, DECREASE
// when strictly decreasing, STABLE otherwise and UNKNOWN while the series is
// still shorter than the window.
func (a *SteadyTrend) Predict(series market.Series) domain.Prediction {
	if len(series) < a.window {
		return domain.PredictionUnknown
	}

	window := series[len(series)-a.window:]

	increasing, decreasing := true, true
	for i := 0; i < len(window)-1; i++ {
		if !window[i].Close.LessThan(window[i+1].Close) {
			increasing = false
		}
		if !window[i].Close.GreaterThan(window[i+1].Close) {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return domain.PredictionIncrease
	case decreasing:
		return domain.PredictionDecrease
	default:
		return domain.PredictionStable
	}
}

// MajorityTrend predicts the direction the majority of consecutive moves in
// its window took. Ties, including an all-equal window, read as STABLE.
type MajorityTrend struct {
	window int
}

// NewMajorityTrend creates a MajorityTrend over the given window of closes.
func NewMajorityTrend(window int) *MajorityTrend {
	return &MajorityTrend{window: window}
}

// Name identifies the algorithm.
func (a *MajorityTrend) Name() string {
	return fmt.Sprintf("MajorityTrend(%d)", a.window)
}

// Predict counts strictly increasing against strictly decreasing adjacent
// pairs and follows the majority. UNKNOWN while the series is shorter than
// the window.
func (a *MajorityTrend) Predict(series market.Series) domain.Prediction {
	if len(series) < a.window {
		return domain.PredictionUnknown
	}

	window := series[len(series)-a.window:]

	var increases, decreases int
	for i := 0; i < len(window)-1; i++ {
		if window[i].Close.LessThan(window[i+1].Close) {
			increases++
		}
		if window[i].Close.GreaterThan(window[i+1].Close) {
			decreases++
		}
	}

	switch {
	case increases > decreases:
		return domain.PredictionIncrease
	case decreases > increases:
		return domain.PredictionDecrease
	default:
		return domain.PredictionStable
	}
}

// RandomWalk ignores the data and predicts uniformly at random. It exists
// as a control baseline for comparing real algorithms against chance.
type RandomWalk struct {
	rng *rand.Rand
}

// NewRandomWalk creates a RandomWalk driven by the given source. The source
// must be seeded by the caller; there is no ambient-randomness fallback, so
// runs stay reproducible under an explicit seed.
func NewRandomWalk(rng *rand.Rand) *RandomWalk {
	return &RandomWalk{rng: rng}
}

// Name identifies the algorithm.
func (a *RandomWalk) Name() string {
	return "RandomWalk"
}

// Predict returns a uniformly random choice among INCREASE, DECREASE and
// STABLE regardless of the series contents.
func (a *RandomWalk) Predict(_ market.Series) domain.Prediction {
	switch a.rng.Intn(3) {
	case 0:
		return domain.PredictionIncrease
	case 1:
		return domain.PredictionDecrease
	default:
		return domain.PredictionStable
	}
}
