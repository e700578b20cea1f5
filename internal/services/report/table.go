package report

import (
	"encoding/csv"
	"io"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/simulation"
)

// Row is one tabular history entry: the executed transaction plus the full
// wallet state it left behind, indexed by tick date.
type Row struct {
	Time         time.Time
	Strategy     string
	Quantity     decimal.Decimal
	Kind         domain.TransactionKind
	TotalBalance decimal.Decimal
	Amounts      map[string]decimal.Decimal
}

// Table flattens the history into rows, one per wallet update.
func Table(history []simulation.WalletUpdate) []Row {
	rows := make([]Row, len(history))
	for i, update := range history {
		rows[i] = Row{
			Time:         update.Time,
			Strategy:     update.Transaction.StrategyName,
			Quantity:     update.Transaction.Quantity,
			Kind:         update.Transaction.Kind,
			TotalBalance: update.Balance,
			Amounts:      update.Amounts,
		}
	}
	return rows
}

// WriteCSV writes the history table as CSV. The column set is the fixed
// transaction columns followed by one column per held asset or currency,
// in sorted name order so output is stable across runs.
func WriteCSV(w io.Writer, history []simulation.WalletUpdate) error {
	names := holdingNames(history)

	header := append([]string{"date", "strategy", "quantity", "transaction_type", "total_balance"}, names...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	for _, row := range Table(history) {
		record := []string{
			row.Time.Format(time.DateOnly),
			row.Strategy,
			row.Quantity.String(),
			row.Kind.String(),
			row.TotalBalance.String(),
		}
		for _, name := range names {
			record = append(record, row.Amounts[name].String())
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func holdingNames(history []simulation.WalletUpdate) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, update := range history {
		for name := range update.Amounts {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
