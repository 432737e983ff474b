// Package strategy implements the trend_ema_dema signal strategy.
//
// Each period a Pipeline turns the bar into a PeriodRecord, Decide runs the
// signal state machine over it and the previous record, and Report formats
// the record for display. TrendEMADEMA ties the three together and owns the
// State and the one-period lookback.
package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/indicator"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"go.uber.org/zap"
)

const (
	Name        = "trend_ema_dema"
	Description = "Buy when (EMA - last(EMA) > 0) and sell when (EMA - last(EMA) < 0), only when short EMA > long EMA."
)

// Pusher receives crossover notifications. Push must not block.
type Pusher interface {
	Push(title, message string)
}

// Options are the collaborators of a TrendEMADEMA. Zero values are usable.
type Options struct {
	Selector types.Selector
	Notifier Pusher
	Logger   *logger.Logger
	Registry indicator.Registry
	// Silent suppresses the latch messages
	Silent bool
}

// Result is everything produced for one period.
type Result struct {
	Record   PeriodRecord
	Decision Decision
	Latches  []LatchEvent
	Columns  []Column
	// Trend is the state trend after the decision
	Trend types.Trend
}

// Signal converts the decision into a signal for the executor.
func (r Result) Signal(symbol string) types.Signal {
	return types.Signal{
		Time:   r.Record.Time,
		Type:   r.Decision.Signal,
		Name:   Name,
		Reason: string(r.Decision.Branch),
		Symbol: symbol,
		Price:  r.Record.Close,
		Trend:  r.Trend,
	}
}

// TrendEMADEMA runs the strategy one period at a time. It is not safe for
// concurrent use; periods must be fed in time order.
type TrendEMADEMA struct {
	config   Config
	options  Options
	pipeline *Pipeline
	state    *State
	prev     optional.Option[PeriodRecord]
	periods  int
}

// NewTrendEMADEMA validates config and creates the strategy.
func NewTrendEMADEMA(config Config, options Options) (*TrendEMADEMA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if options.Logger == nil {
		options.Logger = logger.NewNopLogger()
	}

	return &TrendEMADEMA{
		config:   config,
		options:  options,
		pipeline: NewPipeline(config, options.Registry),
		state:    NewState(),
		prev:     optional.None[PeriodRecord](),
	}, nil
}

// OnPeriod processes one finalized bar.
func (s *TrendEMADEMA) OnPeriod(bar types.MarketData) Result {
	s.state.InPreroll = s.periods < s.config.MinPeriods

	record, latches := s.pipeline.Calculate(s.state, bar, s.prev)
	for _, event := range latches {
		if !s.options.Silent {
			s.options.Logger.Info(event.Message(),
				zap.String("latch", string(event.Kind)),
				zap.Float64("rsi", event.RSI),
				zap.Time("time", bar.Time),
			)
		}
	}

	decision := Decide(s.state, record, s.prev)
	if decision.Notice != "" {
		s.push(decision.Notice)
	}

	s.prev = optional.Some(record)
	s.periods++

	return Result{
		Record:   record,
		Decision: decision,
		Latches:  latches,
		Columns:  Report(record),
		Trend:    s.state.Trend,
	}
}

// AcknowledgeTrade records that the executor filled the last signal, so the
// current up or down trend does not signal again until it is re-entered.
func (s *TrendEMADEMA) AcknowledgeTrade() {
	s.state.ActedOnTrend = true
}

// State returns a copy of the decision state.
func (s *TrendEMADEMA) State() State {
	return *s.state
}

// Previous returns the last finalized record.
func (s *TrendEMADEMA) Previous() optional.Option[PeriodRecord] {
	return s.prev
}

// Periods returns the number of bars processed.
func (s *TrendEMADEMA) Periods() int {
	return s.periods
}

func (s *TrendEMADEMA) Config() Config {
	return s.config
}

func (s *TrendEMADEMA) push(notice string) {
	if s.options.Notifier == nil {
		return
	}

	s.options.Notifier.Push(fmt.Sprintf("[%s]", s.options.Selector.String()), Name+" intel: "+notice)
}
