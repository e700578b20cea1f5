package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/pkg/indicators"
)

// EMACross compares a short against a long exponential moving average of
// the closes: the short EMA above the long one reads as INCREASE, below it
// as DECREASE, equal as STABLE.
type EMACross struct {
	short int
	long  int
}

// NewEMACross creates an EMACross with the given short and long periods.
func NewEMACross(short, long int) *EMACross {
	return &EMACross{short: short, long: long}
}

// Name identifies the algorithm.
func (a *EMACross) Name() string {
	return fmt.Sprintf("EMACross(%d,%d)", a.short, a.long)
}

// Predict classifies the series by the relative position of the two EMAs.
// UNKNOWN while the series cannot fill the long period.
func (a *EMACross) Predict(series market.Series) domain.Prediction {
	if len(series) < a.long {
		return domain.PredictionUnknown
	}

	closes := make([]decimal.Decimal, len(series))
	for i, point := range series {
		closes[i] = point.Close
	}

	shortEMA, err := indicators.CalculateEMA(closes, a.short)
	if err != nil {
		return domain.PredictionUnknown
	}
	longEMA, err := indicators.CalculateEMA(closes, a.long)
	if err != nil {
		return domain.PredictionUnknown
	}

	lastShort := shortEMA[len(shortEMA)-1]
	lastLong := longEMA[len(longEMA)-1]

	switch {
	case lastShort.GreaterThan(lastLong):
		return domain.PredictionIncrease
	case lastShort.LessThan(lastLong):
		return domain.PredictionDecrease
	default:
		return domain.PredictionStable
	}
}
