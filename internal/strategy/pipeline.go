package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/indicator"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

// Indicator series fed by the pipeline.
const (
	SeriesEMATrend       = "ema_trend"
	SeriesEMAShort       = "ema_short"
	SeriesEMALong        = "ema_long"
	SeriesEMATrendStdDev = "ema_trend_stddev"
	SeriesOverboughtRSI  = "overbought_rsi"
	SeriesOversoldRSI    = "oversold_rsi"
)

type LatchKind string

const (
	LatchOverbought LatchKind = "overbought"
	LatchOversold   LatchKind = "oversold"
)

// LatchEvent reports that an RSI latch was newly set this period.
type LatchEvent struct {
	Kind LatchKind
	RSI  float64
}

// Message is the informational line shown when the latch is set.
func (e LatchEvent) Message() string {
	if e.Kind == LatchOverbought {
		return fmt.Sprintf("overbought at %.2f RSI, preparing to sell", e.RSI)
	}

	return fmt.Sprintf("oversold at %.2f RSI, preparing to buy", e.RSI)
}

// Pipeline derives a PeriodRecord from each bar.
type Pipeline struct {
	config   Config
	registry indicator.Registry
}

// NewPipeline creates a pipeline over registry. A nil registry gets a fresh one.
func NewPipeline(config Config, registry indicator.Registry) *Pipeline {
	if registry == nil {
		registry = indicator.NewRegistry()
	}

	return &Pipeline{
		config:   config,
		registry: registry,
	}
}

// Calculate feeds bar into every series and returns the period's record.
// It sets the RSI latches on state and reports the ones it newly set.
func (p *Pipeline) Calculate(state *State, bar types.MarketData, prev optional.Option[PeriodRecord]) (PeriodRecord, []LatchEvent) {
	record := PeriodRecord{
		Time:  bar.Time,
		Close: bar.Close,
	}

	record.EMATrend = p.registry.Update(SeriesEMATrend, types.IndicatorTypeEMA, p.config.EMATrendPeriod, bar.Close)
	record.EMAShort = p.registry.Update(SeriesEMAShort, types.IndicatorTypeEMA, p.config.EMAShortPeriod, bar.Close)
	record.EMALong = p.registry.Update(SeriesEMALong, types.IndicatorTypeEMA, p.config.EMALongPeriod, bar.Close)

	if record.EMAShort.IsSome() && record.EMALong.IsSome() {
		record.DEMAHistogram = optional.Some(record.EMAShort.Unwrap() - record.EMALong.Unwrap())
	}

	record.EMATrendRate = trendRate(record.EMATrend, prev)

	if p.config.NeutralRate.Auto {
		if record.EMATrendRate.IsSome() {
			record.EMATrendStdDev = p.registry.Update(SeriesEMATrendStdDev, types.IndicatorTypeStdDev, p.config.StdDevWindow(), record.EMATrendRate.Unwrap())
		}
	} else {
		record.EMATrendStdDev = optional.Some(p.config.NeutralRate.Value)
	}

	var events []LatchEvent

	if p.config.OverboughtRSI > 0 {
		record.OverboughtRSI = p.registry.Update(SeriesOverboughtRSI, types.IndicatorTypeRSI, p.config.RSIPeriods, bar.Close)
		if record.OverboughtRSI.IsSome() && !state.InPreroll && !state.Overbought && !state.CancelUp {
			if rsi := record.OverboughtRSI.Unwrap(); rsi >= p.config.OverboughtRSI {
				state.Overbought = true
				events = append(events, LatchEvent{Kind: LatchOverbought, RSI: rsi})
			}
		}
	}

	if p.config.OversoldRSI > 0 {
		record.OversoldRSI = p.registry.Update(SeriesOversoldRSI, types.IndicatorTypeRSI, p.config.RSIPeriods, bar.Close)
		if record.OversoldRSI.IsSome() && !state.InPreroll && !state.Oversold && !state.CancelDown {
			if rsi := record.OversoldRSI.Unwrap(); rsi <= p.config.OversoldRSI {
				state.Oversold = true
				events = append(events, LatchEvent{Kind: LatchOversold, RSI: rsi})
			}
		}
	}

	return record, events
}

// trendRate is the percent change of the trend EMA against the previous
// period. It is None without a previous non-zero trend EMA.
func trendRate(cur optional.Option[float64], prev optional.Option[PeriodRecord]) optional.Option[float64] {
	if cur.IsNone() || prev.IsNone() {
		return optional.None[float64]()
	}

	last := prev.Unwrap().EMATrend
	if last.IsNone() || last.Unwrap() == 0 {
		return optional.None[float64]()
	}

	return optional.Some((cur.Unwrap() - last.Unwrap()) / last.Unwrap() * 100)
}
