package strategy

import (
	"time"

	"github.com/moznion/go-optional"
)

// PeriodRecord holds the indicator values of one finalized period.
// Every derived field is None while its inputs are warming up.
type PeriodRecord struct {
	Time  time.Time
	Close float64

	EMATrend       optional.Option[float64]
	EMAShort       optional.Option[float64]
	EMALong        optional.Option[float64]
	DEMAHistogram  optional.Option[float64]
	EMATrendRate   optional.Option[float64]
	EMATrendStdDev optional.Option[float64]
	OverboughtRSI  optional.Option[float64]
	OversoldRSI    optional.Option[float64]
}
