package strategy

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/wallet"
)

// QuantityPolicy sizes a proposed transaction against the current wallet
// state. The returned quantity is in asset units.
type QuantityPolicy interface {
	Quantity(w *wallet.Wallet, tx domain.Transaction) decimal.Decimal
}

// WalletPercentage sizes buys as a fraction of the available base currency
// and sells as a fraction of the held asset quantity.
type WalletPercentage struct {
	fraction decimal.Decimal
}

// NewWalletPercentage creates a WalletPercentage policy. The fraction is
// expected in [0, 1].
func NewWalletPercentage(fraction decimal.Decimal) *WalletPercentage {
	return &WalletPercentage{fraction: fraction}
}

// Quantity sizes the transaction. Kinds other than BUY and SELL size to zero.
func (p *WalletPercentage) Quantity(w *wallet.Wallet, tx domain.Transaction) decimal.Decimal {
	var quantity decimal.Decimal

	switch tx.Kind {
	case domain.KindBuy:
		spend := w.Amount(w.Base().Name).Mul(p.fraction)
		quantity = spend.Div(tx.Price)
	case domain.KindSell:
		quantity = w.Amount(tx.Asset.Name).Mul(p.fraction)
	default:
		return decimal.Zero
	}

	return roundQuantity(quantity, tx.Asset)
}

// FixedAmount spends up to a fixed notional on buys and sells up to a fixed
// quantity of the asset, capped by what the wallet actually holds.
type FixedAmount struct {
	amount decimal.Decimal
}

// NewFixedAmount creates a FixedAmount policy. On the buy side the amount
// is in base currency, on the sell side it is in asset units.
func NewFixedAmount(amount decimal.Decimal) *FixedAmount {
	return &FixedAmount{amount: amount}
}

// Quantity sizes the transaction. Kinds other than BUY and SELL size to zero.
func (p *FixedAmount) Quantity(w *wallet.Wallet, tx domain.Transaction) decimal.Decimal {
	var quantity decimal.Decimal

	switch tx.Kind {
	case domain.KindBuy:
		spend := decimal.Min(w.Amount(w.Base().Name), p.amount)
		quantity = spend.Div(tx.Price)
	case domain.KindSell:
		// the configured amount is in asset units here, so it is rounded
		// before capping to the held quantity
		amount := p.amount
		if !tx.Asset.AllowsFractional {
			amount = amount.Truncate(0)
		}
		quantity = decimal.Min(w.Amount(tx.Asset.Name), amount)
	default:
		return decimal.Zero
	}

	return roundQuantity(quantity, tx.Asset)
}

// roundQuantity truncates the quantity toward zero for assets that cannot
// be traded in fractions.
func roundQuantity(quantity decimal.Decimal, asset domain.Asset) decimal.Decimal {
	if asset.AllowsFractional {
		return quantity
	}
	return quantity.Truncate(0)
}
