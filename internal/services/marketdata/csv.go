// Package marketdata loads per-asset price series from external sources.
// The simulation core consumes the resulting series and never touches the
// sources itself.
package marketdata

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"golang.org/x/sync/errgroup"
)

// LoadCSVSeries reads a date-sorted price series from a CSV file with
// "date,close" records, dates in YYYY-MM-DD. A header line is skipped when
// the first field does not parse as a date.
func LoadCSVSeries(path string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s as CSV", path)
	}

	series := make(market.Series, 0, len(records))
	for i, record := range records {
		if len(record) < 2 {
			return nil, errors.Errorf("%s: record %d has %d fields, want 2", path, i, len(record))
		}

		date, err := time.Parse(time.DateOnly, record[0])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, errors.Wrapf(err, "%s: record %d: bad date %q", path, i, record[0])
		}

		close, err := decimal.NewFromString(record[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: record %d: bad close %q", path, i, record[1])
		}

		series = append(series, domain.PricePoint{Date: date, Close: close})
	}

	return series, nil
}

// LoadCSVDir loads one series per *.csv file in the directory, concurrently.
// The asset name is the file name without extension; the fractional flag
// comes from the supplied asset definitions, defaulting to fractional for
// assets the caller did not describe.
func LoadCSVDir(dir string, assets []domain.Asset) (map[domain.Asset]market.Series, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	byName := make(map[string]domain.Asset, len(assets))
	for _, asset := range assets {
		byName[asset.Name] = asset
	}

	var (
		mu     sync.Mutex
		result = make(map[domain.Asset]market.Series, len(matches))
	)

	g := new(errgroup.Group)
	for _, path := range matches {
		g.Go(func() error {
			series, err := LoadCSVSeries(path)
			if err != nil {
				return err
			}

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			asset, ok := byName[name]
			if !ok {
				asset = domain.Asset{Name: name, AllowsFractional: true}
			}

			mu.Lock()
			result[asset] = series
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
