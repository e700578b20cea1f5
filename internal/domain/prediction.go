package domain

// Prediction classifies recent price action.
type Prediction int

const (
	// PredictionUnknown means the algorithm had too little history to
	// classify anything. It is a normal warm-up value, never a signal.
	PredictionUnknown Prediction = iota
	// PredictionIncrease expects the price to rise.
	PredictionIncrease
	// PredictionDecrease expects the price to fall.
	PredictionDecrease
	// PredictionStable expects no clear direction.
	PredictionStable
)

// String returns the string representation.
func (p Prediction) String() string {
	switch p {
	case PredictionIncrease:
		return "INCREASE"
	case PredictionDecrease:
		return "DECREASE"
	case PredictionStable:
		return "STABLE"
	default:
		return "UNKNOWN"
	}
}
