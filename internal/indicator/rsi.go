package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/sdcoffey/techan"
)

// RSI calculates the Relative Strength Index using Wilder's smoothing.
// It needs period+1 prices (period deltas) before the first value.
//
// Gains and losses are kept as their own series so the techan modified moving
// average seeds on real deltas only.
type RSI struct {
	period    int
	count     int
	prevPrice float64
	gains     *series
	losses    *series
	avgGain   techan.Indicator
	avgLoss   techan.Indicator
	value     float64
}

// NewRSI creates a new RSI indicator. Periods below 1 are treated as 1.
func NewRSI(period int) *RSI {
	rsi := &RSI{period: clampPeriod(period)}
	rsi.Reset()

	return rsi
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

func (r *RSI) Period() int { return r.period }

// Update feeds the next price.
func (r *RSI) Update(price float64) optional.Option[float64] {
	r.count++

	if r.count == 1 {
		r.prevPrice = price

		return r.Value()
	}

	delta := price - r.prevPrice
	r.prevPrice = price

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	r.gains.add(gain)
	index := r.losses.add(loss)

	if !r.Ready() {
		return r.Value()
	}

	avgGain := r.avgGain.Calculate(index)
	avgLoss := r.avgLoss.Calculate(index)
	r.value = relativeStrength(avgGain.Float(), avgLoss.Float())

	if len(r.gains.values) >= maxHistory {
		r.smooth(seeded(avgGain, r.period), seeded(avgLoss, r.period))
	}

	return r.Value()
}

func (r *RSI) Value() optional.Option[float64] {
	if !r.Ready() {
		return optional.None[float64]()
	}

	return optional.Some(r.value)
}

func (r *RSI) Ready() bool { return r.count > r.period }

func (r *RSI) Reset() {
	r.count = 0
	r.prevPrice = 0
	r.value = 0
	r.smooth(&series{}, &series{})
}

func (r *RSI) smooth(gains, losses *series) {
	r.gains = gains
	r.losses = losses
	r.avgGain = techan.NewMMAIndicator(gains, r.period)
	r.avgLoss = techan.NewMMAIndicator(losses, r.period)
}

func relativeStrength(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}

		return 100
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
