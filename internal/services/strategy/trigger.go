package strategy

import "github.com/vadiminshakov/replay/internal/domain"

// Trigger turns a strategy's running prediction log into a buy, sell or
// hold decision. Triggers are stateless; all state lives in the log.
type Trigger interface {
	Evaluate(history []domain.Prediction) domain.TransactionKind
}

// RepeatedPredictions triggers when the last repetitions entries of the log
// all agree on a direction.
type RepeatedPredictions struct {
	repetitions int
}

// NewRepeatedPredictions creates a RepeatedPredictions trigger.
func NewRepeatedPredictions(repetitions int) *RepeatedPredictions {
	return &RepeatedPredictions{repetitions: repetitions}
}

// Evaluate inspects the last repetitions entries of the log: BUY when all
// of them are INCREASE, SELL when all are DECREASE, HOLD otherwise. A log
// shorter than the repetition count is evaluated as-is, so a young strategy
// whose few predictions already agree can still trade.
func (t *RepeatedPredictions) Evaluate(history []domain.Prediction) domain.TransactionKind {
	start := len(history) - t.repetitions
	if start < 0 {
		start = 0
	}
	last := history[start:]

	allIncrease, allDecrease := true, true
	for _, p := range last {
		if p != domain.PredictionIncrease {
			allIncrease = false
		}
		if p != domain.PredictionDecrease {
			allDecrease = false
		}
	}

	switch {
	case allIncrease:
		return domain.KindBuy
	case allDecrease:
		return domain.KindSell
	default:
		return domain.KindHold
	}
}
