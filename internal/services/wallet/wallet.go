// Package wallet implements the ledger the simulation trades against.
package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
)

// UnknownAssetError is returned when a transaction references an asset the
// wallet was never initialized with. It aborts the run: a misconfigured
// strategy must not trade into a ledger entry that does not exist.
type UnknownAssetError struct {
	Asset string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("asset %q is not available in wallet", e.Asset)
}

// PriceLookup resolves an asset price at a point in time. The second return
// value is false when no price is known at or before that time.
type PriceLookup func(asset domain.Asset, at time.Time) (decimal.Decimal, bool)

// Wallet holds asset and currency balances keyed by name. The base currency
// entry always exists. Balances are mutated only through Apply and are not
// bounds-checked: overdraft and over-sell pass through silently.
type Wallet struct {
	base    domain.Currency
	amounts map[string]decimal.Decimal
	assets  map[string]domain.Asset
}

// NewWallet creates a wallet settling in the given base currency, with the
// base balance initialized to zero.
func NewWallet(base domain.Currency) *Wallet {
	return &Wallet{
		base:    base,
		amounts: map[string]decimal.Decimal{base.Name: decimal.Zero},
		assets:  make(map[string]domain.Asset),
	}
}

// Deposit adds to a currency balance, creating the entry if needed.
func (w *Wallet) Deposit(currency domain.Currency, amount decimal.Decimal) {
	w.amounts[currency.Name] = w.amounts[currency.Name].Add(amount)
}

// AddAsset registers an asset holding. A transaction for an unregistered
// asset fails with UnknownAssetError, so every tradable asset must be added
// up front even when the starting quantity is zero.
func (w *Wallet) AddAsset(asset domain.Asset, amount decimal.Decimal) {
	w.assets[asset.Name] = asset
	w.amounts[asset.Name] = w.amounts[asset.Name].Add(amount)
}

// Base returns the wallet's settlement currency.
func (w *Wallet) Base() domain.Currency {
	return w.base
}

// Amount returns the balance held under the given name.
func (w *Wallet) Amount(name string) decimal.Decimal {
	return w.amounts[name]
}

// Amounts returns a copy of all balances keyed by name.
func (w *Wallet) Amounts() map[string]decimal.Decimal {
	amounts := make(map[string]decimal.Decimal, len(w.amounts))
	for name, amount := range w.amounts {
		amounts[name] = amount
	}
	return amounts
}

// Apply mutates balances according to the transaction: a buy moves notional
// value from the base currency into the asset, a sell moves it back. Value
// is conserved at the quoted price.
func (w *Wallet) Apply(tx domain.Transaction) error {
	if _, ok := w.amounts[tx.Asset.Name]; !ok {
		return &UnknownAssetError{Asset: tx.Asset.Name}
	}

	notional := tx.Notional()

	switch tx.Kind {
	case domain.KindSell:
		w.amounts[tx.Asset.Name] = w.amounts[tx.Asset.Name].Sub(tx.Quantity)
		w.amounts[w.base.Name] = w.amounts[w.base.Name].Add(notional)
	case domain.KindBuy:
		w.amounts[tx.Asset.Name] = w.amounts[tx.Asset.Name].Add(tx.Quantity)
		w.amounts[w.base.Name] = w.amounts[w.base.Name].Sub(notional)
	}

	return nil
}

// NetWorth marks all holdings to market at the given time and adds the base
// currency balance. Assets without a known price contribute nothing, and
// currency entries other than the base currency are ignored.
func (w *Wallet) NetWorth(lookup PriceLookup, at time.Time) decimal.Decimal {
	worth := decimal.Zero
	for name, asset := range w.assets {
		price, ok := lookup(asset, at)
		if !ok {
			continue
		}
		worth = worth.Add(price.Mul(w.amounts[name]))
	}
	return worth.Add(w.amounts[w.base.Name])
}
