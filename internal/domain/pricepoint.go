package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single dated closing price observation.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}
