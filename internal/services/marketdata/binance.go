package marketdata

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/replay/internal/domain"
	"github.com/vadiminshakov/replay/internal/services/market"
	"github.com/vadiminshakov/replay/pkg/retrier"
)

// BinanceProvider loads daily closing price series from Binance klines.
type BinanceProvider struct {
	client  *binance.Client
	retrier *retrier.Retrier
}

// NewBinanceProvider creates a Binance-backed series provider.
func NewBinanceProvider(client *binance.Client) *BinanceProvider {
	return &BinanceProvider{
		client:  client,
		retrier: retrier.New(),
	}
}

// LoadSeries fetches up to limit daily klines for the symbol and converts
// them to a date-sorted close series. The kline close time marks the
// observation date. Transient API failures are retried with backoff.
func (p *BinanceProvider) LoadSeries(ctx context.Context, symbol string, limit int) (market.Series, error) {
	klines, err := retrier.DoWithData(p.retrier, ctx, func(ctx context.Context) ([]*binance.Kline, error) {
		return p.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			Limit(limit).
			Do(ctx)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch klines for %s", symbol)
	}

	series := make(market.Series, 0, len(klines))
	for i, k := range klines {
		close, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "parse close price at index %d", i)
		}

		date := time.Unix(0, k.CloseTime*int64(time.Millisecond)).UTC().Truncate(24 * time.Hour)
		series = append(series, domain.PricePoint{Date: date, Close: close})
	}

	return series, nil
}
