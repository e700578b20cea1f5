package strategy

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
)

func series(closes ...int64) market.Series {
	s := make(market.Series, len(closes))
	for i, c := range closes {
		s[i] = domain.PricePoint{
			Date:  time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			Close: decimal.NewFromInt(c),
		}
	}
	return s
}

func TestSteadyTrend_Predict(t *testing.T) {
	tests := []struct {
		name   string
		closes []int64
		want   domain.Prediction
	}{
		{"strictly increasing", []int64{10, 11, 12}, domain.PredictionIncrease},
		{"strictly decreasing", []int64{12, 11, 10}, domain.PredictionDecrease},
		{"broken run", []int64{10, 12, 11}, domain.PredictionStable},
		{"plateau breaks the run", []int64{10, 10, 11}, domain.PredictionStable},
		{"window not filled", []int64{10, 11}, domain.PredictionUnknown},
	}

	algo := NewSteadyTrend(3)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, algo.Predict(series(tc.closes...)))
		})
	}
}

func TestSteadyTrend_UsesOnlyTrailingWindow(t *testing.T) {
	algo := NewSteadyTrend(3)

	// older prices fall, the last three rise
	got := algo.Predict(series(50, 40, 30, 10, 11, 12))
	require.Equal(t, domain.PredictionIncrease, got)
}

func TestMajorityTrend_Predict(t *testing.T) {
	tests := []struct {
		name   string
		closes []int64
		want   domain.Prediction
	}{
		{"majority up", []int64{10, 11, 10, 12, 13}, domain.PredictionIncrease},
		{"majority down", []int64{13, 12, 13, 11, 10}, domain.PredictionDecrease},
		{"tie resolves to stable", []int64{10, 11, 10, 11, 10}, domain.PredictionStable},
		{"all equal is stable", []int64{10, 10, 10, 10, 10}, domain.PredictionStable},
		{"window not filled", []int64{10, 11, 12}, domain.PredictionUnknown},
	}

	algo := NewMajorityTrend(5)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, algo.Predict(series(tc.closes...)))
		})
	}
}

func TestRandomWalk_SeededIsReproducible(t *testing.T) {
	data := series(10, 11, 12)

	first := NewRandomWalk(rand.New(rand.NewSource(42)))
	second := NewRandomWalk(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		require.Equal(t, first.Predict(data), second.Predict(data), "diverged at draw %d", i)
	}
}

func TestRandomWalk_NeverPredictsUnknown(t *testing.T) {
	algo := NewRandomWalk(rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		got := algo.Predict(nil)
		assert.NotEqual(t, domain.PredictionUnknown, got)
	}
}

func TestEMACross_Predict(t *testing.T) {
	algo := NewEMACross(3, 6)

	rising := series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	require.Equal(t, domain.PredictionIncrease, algo.Predict(rising))

	falling := series(10, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	require.Equal(t, domain.PredictionDecrease, algo.Predict(falling))
}

func TestEMACross_UnknownWhenSeriesTooShort(t *testing.T) {
	algo := NewEMACross(3, 6)
	require.Equal(t, domain.PredictionUnknown, algo.Predict(series(1, 2, 3)))
}
