// Package simulation drives the chronological replay of strategies over a
// price timeline.
package simulation

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/internal/services/strategy"
	"github.com/vadiminshakov/replay/internal/services/wallet"
	"go.uber.org/zap"
)

// DefaultMaxStaleness is the default tolerance, in whole days, between the
// current tick and an asset's most recent observation.
const DefaultMaxStaleness = 2

// WalletUpdate is one append-only history record, created right after a
// transaction is applied and never touched again.
type WalletUpdate struct {
	// Time is the tick the transaction executed on.
	Time time.Time `json:"time"`
	// Amounts is a full copy of the wallet balances at that instant.
	Amounts map[string]decimal.Decimal `json:"amounts"`
	// Transaction is the transaction that caused the update.
	Transaction domain.Transaction `json:"transaction"`
	// Balance is the mark-to-market net worth right after applying.
	Balance decimal.Decimal `json:"balance"`
}

// Engine replays the timeline tick by tick, evaluating strategies in
// priority order against a single shared wallet. Strategies only propose
// transactions; the engine alone applies them, so their relative order
// within a tick decides who gets the currency balance first.
type Engine struct {
	timeline     *market.Timeline
	strategies   []*strategy.Strategy
	wallet       *wallet.Wallet
	maxStaleness int
	logger       *zap.Logger
	history      []WalletUpdate
	completed    bool
}

// NewEngine creates an engine over the given timeline, strategies and
// wallet. A negative maxStaleness falls back to DefaultMaxStaleness. The
// strategy order is fixed here: ascending priority, with registration order
// breaking ties.
func NewEngine(
	timeline *market.Timeline,
	strategies []*strategy.Strategy,
	w *wallet.Wallet,
	maxStaleness int,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxStaleness < 0 {
		maxStaleness = DefaultMaxStaleness
	}

	ordered := make([]*strategy.Strategy, len(strategies))
	copy(ordered, strategies)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	return &Engine{
		timeline:     timeline,
		strategies:   ordered,
		wallet:       w,
		maxStaleness: maxStaleness,
		logger:       logger,
	}
}

// Run performs the single forward pass over the tick sequence. It is
// terminal: a second call returns an error instead of replaying. Any
// wallet apply failure aborts the run, because a partially applied tick
// cannot be rolled back.
func (e *Engine) Run() error {
	if e.completed {
		return errors.New("simulation already completed")
	}
	e.completed = true

	for date := range e.timeline.Ticks() {
		if err := e.tick(date); err != nil {
			return err
		}
	}

	e.logger.Info("simulation completed",
		zap.Int("strategies", len(e.strategies)),
		zap.Int("transactions", len(e.history)))

	return nil
}

func (e *Engine) tick(date time.Time) error {
	snapshot := e.timeline.Snapshot(date)

	for _, st := range e.strategies {
		series := snapshot[st.Asset().Name]
		if len(series) == 0 {
			continue
		}

		lastObserved := series[len(series)-1].Date
		staleness := int(date.Sub(lastObserved).Hours() / 24)
		if staleness > e.maxStaleness {
			continue
		}

		tx := st.Decide(series, e.wallet)
		if tx == nil {
			continue
		}

		if err := e.wallet.Apply(*tx); err != nil {
			return errors.Wrapf(err, "apply transaction from strategy %s", st.Name())
		}

		balance := e.wallet.NetWorth(e.timeline.PriceOf, date)
		e.history = append(e.history, WalletUpdate{
			Time:        date,
			Amounts:     e.wallet.Amounts(),
			Transaction: *tx,
			Balance:     balance,
		})

		e.logger.Info("transaction executed",
			zap.Time("tick", date),
			zap.String("strategy", tx.StrategyName),
			zap.String("kind", tx.Kind.String()),
			zap.String("asset", tx.Asset.Name),
			zap.String("quantity", tx.Quantity.String()),
			zap.String("price", tx.Price.String()),
			zap.String("balance", balance.String()))
	}

	return nil
}

// History returns the append-only sequence of wallet updates in execution
// order.
func (e *Engine) History() []WalletUpdate {
	return e.history
}
