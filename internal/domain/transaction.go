package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the type of a trading transaction.
type TransactionKind int

const (
	// KindHold means no transaction. Hold decisions are never materialized
	// into Transaction values; the kind exists for triggers and reports.
	KindHold TransactionKind = iota
	// KindBuy converts base currency into the asset.
	KindBuy
	// KindSell converts the asset into base currency.
	KindSell
)

// String returns the string representation.
func (k TransactionKind) String() string {
	switch k {
	case KindBuy:
		return "BUY"
	case KindSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Transaction is an immutable record of a single buy or sell decision.
// Quantity is filled in by a quantity policy after the record is stamped
// with the decision price and date.
type Transaction struct {
	Kind         TransactionKind `json:"kind"`
	Asset        Asset           `json:"asset"`
	Currency     Currency        `json:"currency"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Date         time.Time       `json:"date"`
	StrategyName string          `json:"strategy"`
}

// Notional returns the transaction value in the settlement currency.
func (t *Transaction) Notional() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// String returns a human readable representation for logs.
func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s @ %s by %s",
		t.Kind, t.Quantity.String(), t.Asset.Name, t.Price.String(), t.StrategyName)
}
