package datasource

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"go.uber.org/zap"
)

// binanceIntervals are the kline intervals Binance serves, from coarsest to finest.
var binanceIntervals = []struct {
	name     string
	duration time.Duration
}{
	{"1d", 24 * time.Hour},
	{"12h", 12 * time.Hour},
	{"8h", 8 * time.Hour},
	{"6h", 6 * time.Hour},
	{"4h", 4 * time.Hour},
	{"2h", 2 * time.Hour},
	{"1h", time.Hour},
	{"30m", 30 * time.Minute},
	{"15m", 15 * time.Minute},
	{"5m", 5 * time.Minute},
	{"3m", 3 * time.Minute},
	{"1m", time.Minute},
}

// binanceKlineLimit is the page size requested from the klines endpoint
const binanceKlineLimit = 1000

// defaultLookback is how many periods are fetched when no start is given
const defaultLookback = 500

// BinanceInterval returns the coarsest Binance kline interval that evenly divides period.
func BinanceInterval(period time.Duration) (string, time.Duration, error) {
	for _, interval := range binanceIntervals {
		if period >= interval.duration && period%interval.duration == 0 {
			return interval.name, interval.duration, nil
		}
	}

	return "", 0, errors.Newf(errors.ErrCodeInvalidInterval, "period %s cannot be built from binance klines", period)
}

// BinanceDataSource reads closed klines from the Binance REST API and merges them into bars of one period.
type BinanceDataSource struct {
	client   *binance.Client
	symbol   string
	period   time.Duration
	interval string
	step     time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

// NewBinanceDataSource creates a data source for the selector's ticker on the public API.
func NewBinanceDataSource(selector types.Selector, period time.Duration, log *logger.Logger) (*BinanceDataSource, error) {
	return NewBinanceDataSourceWithClient(binance.NewClient("", ""), selector, period, log)
}

// NewBinanceDataSourceWithClient is NewBinanceDataSource with a caller supplied client.
func NewBinanceDataSourceWithClient(client *binance.Client, selector types.Selector, period time.Duration, log *logger.Logger) (*BinanceDataSource, error) {
	interval, step, err := BinanceInterval(period)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BinanceDataSource{
		client:   client,
		symbol:   selector.Symbol(),
		period:   period,
		interval: interval,
		step:     step,
		logger:   log,
		now:      time.Now,
	}, nil
}

func (b *BinanceDataSource) bounds(start optional.Option[time.Time], end optional.Option[time.Time]) (time.Time, time.Time) {
	to := b.now()
	if end.IsSome() {
		to = end.Unwrap()
	}

	from := to.Add(-defaultLookback * b.period)
	if start.IsSome() {
		from = start.Unwrap()
	}

	return from, to
}

// Count implements DataSource. The value is estimated from the range since klines are fetched lazily.
func (b *BinanceDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	from, to := b.bounds(start, end)
	if to.Before(from) {
		return 0, nil
	}

	return int(to.Sub(from)/b.period) + 1, nil
}

// ReadAll implements DataSource. Only periods whose last kline has closed are yielded.
func (b *BinanceDataSource) ReadAll(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		from, to := b.bounds(start, end)
		now := b.now()
		bucket := newBucket(b.symbol, b.period)
		cursor := from.UnixMilli()

		for cursor <= to.UnixMilli() {
			klines, err := b.client.NewKlinesService().
				Symbol(b.symbol).
				Interval(b.interval).
				StartTime(cursor).
				EndTime(to.UnixMilli()).
				Limit(binanceKlineLimit).
				Do(ctx)
			if err != nil {
				yield(types.MarketData{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines", b.symbol))

				return
			}

			b.logger.Debug("Fetched klines", zap.String("symbol", b.symbol), zap.Int("count", len(klines)))

			for _, k := range klines {
				if time.UnixMilli(k.CloseTime).After(now) {
					continue
				}

				bar, err := klineToMarketData(b.symbol, k)
				if err != nil {
					yield(types.MarketData{}, err)

					return
				}

				if done, ok := bucket.add(bar, b.step); ok {
					if !inRange(done.Time, start, end) {
						continue
					}

					if !yield(done, nil) {
						return
					}
				}
			}

			if len(klines) < binanceKlineLimit {
				break
			}

			cursor = klines[len(klines)-1].CloseTime + 1
		}
	}
}

// Close implements DataSource.
func (b *BinanceDataSource) Close() error {
	return nil
}

func klineToMarketData(symbol string, k *binance.Kline) (types.MarketData, error) {
	values := make([]float64, 0, 5)

	for _, field := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return types.MarketData{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "invalid kline value %q", field)
		}

		values = append(values, value)
	}

	return types.MarketData{
		Symbol: symbol,
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

// bucket merges consecutive klines into one bar per period.
type bucket struct {
	symbol string
	period time.Duration
	bar    types.MarketData
	filled time.Duration
}

func newBucket(symbol string, period time.Duration) *bucket {
	return &bucket{symbol: symbol, period: period}
}

// add merges a kline of length step. It returns the bar once the period is fully covered.
// A period with a missing kline is restarted from the next one seen.
func (b *bucket) add(kline types.MarketData, step time.Duration) (types.MarketData, bool) {
	start := kline.Time.Truncate(b.period)

	if b.filled == 0 || !b.bar.Time.Equal(start) {
		b.bar = types.MarketData{
			Symbol: b.symbol,
			Time:   start,
			Open:   kline.Open,
			High:   kline.High,
			Low:    kline.Low,
			Close:  kline.Close,
			Volume: kline.Volume,
		}
		b.filled = 0

		if !kline.Time.Equal(start) {
			return types.MarketData{}, false
		}
	} else {
		b.bar.High = max(b.bar.High, kline.High)
		b.bar.Low = min(b.bar.Low, kline.Low)
		b.bar.Close = kline.Close
		b.bar.Volume += kline.Volume
	}

	b.filled += step

	if b.filled >= b.period {
		b.filled = 0

		return b.bar, true
	}

	return types.MarketData{}, false
}
