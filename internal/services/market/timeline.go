// Package market holds the historical price data the simulation replays.
package market

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
)

// Series is a per-asset price history ordered by date, one entry per date.
type Series []domain.PricePoint

// Timeline owns one price series per asset and the merged set of distinct
// observation dates across all of them. It is built once before a run and
// never mutated afterwards, so it is safe to share read-only.
type Timeline struct {
	assets map[string]domain.Asset
	series map[string]Series
	dates  []time.Time
}

// NewTimeline builds a timeline from per-asset series. Series are expected
// to be date-sorted and de-duplicated by the caller.
func NewTimeline(series map[domain.Asset]Series) *Timeline {
	t := &Timeline{
		assets: make(map[string]domain.Asset, len(series)),
		series: make(map[string]Series, len(series)),
	}

	seen := make(map[time.Time]struct{})
	for asset, s := range series {
		t.assets[asset.Name] = asset
		t.series[asset.Name] = s
		for _, point := range s {
			if _, ok := seen[point.Date]; ok {
				continue
			}
			seen[point.Date] = struct{}{}
			t.dates = append(t.dates, point.Date)
		}
	}
	slices.SortFunc(t.dates, time.Time.Compare)

	return t
}

// Ticks returns a lazy, restartable sequence of all distinct observation
// dates in ascending order. This is the simulation's tick sequence.
func (t *Timeline) Ticks() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, date := range t.dates {
			if !yield(date) {
				return
			}
		}
	}
}

// Snapshot returns, per asset name, the prefix of its series with dates at
// or before the given date. Observations after the date are never included,
// which is what keeps strategies from seeing the future.
func (t *Timeline) Snapshot(date time.Time) map[string]Series {
	snapshot := make(map[string]Series, len(t.series))
	for name, s := range t.series {
		snapshot[name] = s[:upperBound(s, date)]
	}
	return snapshot
}

// PriceOf returns the last known closing price of the asset at or before
// the given date. The second return value is false when the asset is not
// part of the timeline or the date precedes its first observation.
func (t *Timeline) PriceOf(asset domain.Asset, date time.Time) (decimal.Decimal, bool) {
	s, ok := t.series[asset.Name]
	if !ok || len(s) == 0 {
		return decimal.Decimal{}, false
	}
	n := upperBound(s, date)
	if n == 0 {
		return decimal.Decimal{}, false
	}
	return s[n-1].Close, true
}

// Assets returns the assets the timeline has data for.
func (t *Timeline) Assets() []domain.Asset {
	assets := make([]domain.Asset, 0, len(t.assets))
	for _, asset := range t.assets {
		assets = append(assets, asset)
	}
	slices.SortFunc(assets, func(a, b domain.Asset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return assets
}

// upperBound returns the number of leading points dated at or before date.
func upperBound(s Series, date time.Time) int {
	i, _ := slices.BinarySearchFunc(s, date, func(p domain.PricePoint, d time.Time) int {
		return p.Date.Compare(d)
	})
	for i < len(s) && !s[i].Date.After(date) {
		i++
	}
	return i
}
