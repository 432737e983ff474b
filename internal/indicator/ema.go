package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// EMA implements Exponential Moving Average calculation on top of techan.
// The first value is the simple average of the first period observations;
// afterwards EMA = price * alpha + EMA_prev * (1 - alpha), alpha = 2 / (period + 1).
type EMA struct {
	period int
	alpha  float64
	count  int
	values *series
	ema    techan.Indicator
	value  big.Decimal
}

// NewEMA creates a new EMA indicator. Periods below 1 are treated as 1.
func NewEMA(period int) *EMA {
	period = clampPeriod(period)

	ema := &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
	ema.Reset()

	return ema
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

func (e *EMA) Period() int { return e.period }

// Update feeds the next price.
func (e *EMA) Update(price float64) optional.Option[float64] {
	e.count++

	index := e.values.add(price)
	if !e.Ready() {
		return optional.None[float64]()
	}

	e.value = e.ema.Calculate(index)

	if len(e.values.values) >= maxHistory {
		e.values = seeded(e.value, e.period)
		e.ema = techan.NewEMAIndicator(e.values, e.period)
	}

	return e.Value()
}

func (e *EMA) Value() optional.Option[float64] {
	if !e.Ready() {
		return optional.None[float64]()
	}

	return optional.Some(e.value.Float())
}

func (e *EMA) Ready() bool { return e.count >= e.period }

func (e *EMA) Reset() {
	e.count = 0
	e.values = &series{}
	e.ema = techan.NewEMAIndicator(e.values, e.period)
	e.value = big.ZERO
}
