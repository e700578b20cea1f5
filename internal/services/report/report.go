// Package report reduces a simulation history into performance metrics.
package report

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/simulation"
)

// ErrEmptyHistory is returned when a report is requested over a history
// with no wallet updates: without an initial balance there is nothing to
// measure against.
var ErrEmptyHistory = errors.New("cannot generate report from empty history")

// Report holds the performance metrics of a completed simulation.
type Report struct {
	ROI               decimal.Decimal
	NetProfit         decimal.Decimal
	MaxProfit         decimal.Decimal
	MaxLoss           decimal.Decimal
	TotalTransactions int
	BuyTransactions   int
	SellTransactions  int
}

// Generate computes the report over the ordered wallet update history. It
// is a pure function of its input: the same history always yields the same
// report.
func Generate(history []simulation.WalletUpdate) (Report, error) {
	if len(history) == 0 {
		return Report{}, ErrEmptyHistory
	}

	initial := history[0].Balance
	final := history[len(history)-1].Balance

	maxBalance, minBalance := initial, initial
	var buys, sells int
	for _, update := range history {
		if update.Balance.GreaterThan(maxBalance) {
			maxBalance = update.Balance
		}
		if update.Balance.LessThan(minBalance) {
			minBalance = update.Balance
		}
		switch update.Transaction.Kind {
		case domain.KindBuy:
			buys++
		case domain.KindSell:
			sells++
		}
	}

	return Report{
		ROI:               final.Sub(initial).Div(initial),
		NetProfit:         final.Sub(initial),
		MaxProfit:         maxBalance.Sub(initial),
		MaxLoss:           minBalance.Sub(initial),
		TotalTransactions: len(history),
		BuyTransactions:   buys,
		SellTransactions:  sells,
	}, nil
}
