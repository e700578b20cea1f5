// Package domain defines core data structures used throughout the backtester.
package domain

// Asset is a tradable instrument. Identity is the name alone: two Asset
// values with the same name refer to the same instrument even when
// AllowsFractional differs, so lookups must always be keyed by Name.
type Asset struct {
	// Name is the instrument symbol, case-sensitive.
	Name string
	// AllowsFractional reports whether transacted quantities may carry
	// a fractional part. When false, quantities are truncated toward zero.
	AllowsFractional bool
}

// Currency is a settlement unit. Identity is the name alone.
type Currency struct {
	Name string
}
