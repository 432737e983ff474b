// Package indicator provides streaming technical indicators.
//
// Each indicator is fed one value per period and returns optional.None until
// it has seen enough observations. Warm-up is not an error: callers check
// IsSome before using a value.
package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

// Indicator is an append-only streaming indicator.
type Indicator interface {
	// Name returns the indicator kind
	Name() types.IndicatorType
	// Period returns the number of observations the indicator needs
	Period() int
	// Update feeds the next observation and returns the new value
	Update(value float64) optional.Option[float64]
	// Value returns the latest value without feeding anything
	Value() optional.Option[float64]
	// Ready reports whether Value is defined
	Ready() bool
	// Reset drops all observations
	Reset()
}

// New builds an indicator of the given kind. Unknown kinds return false.
func New(kind types.IndicatorType, period int) (Indicator, bool) {
	switch kind {
	case types.IndicatorTypeEMA:
		return NewEMA(period), true
	case types.IndicatorTypeRSI:
		return NewRSI(period), true
	case types.IndicatorTypeStdDev:
		return NewStdDev(period), true
	default:
		return nil, false
	}
}

func clampPeriod(period int) int {
	if period < 1 {
		return 1
	}

	return period
}
