// Package engine runs the trend_ema_dema strategy over a bar source.
//
// Bars are processed one at a time on the calling goroutine. For each period
// the strategy decides, an emitted signal is marked and handed to the
// executor, and a successful fill is acknowledged back to the strategy so the
// same trend does not signal twice. Notifications are the only work done off
// the run goroutine.
package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/datasource"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/marker"
	"github.com/rxtech-lab/argo-trend/internal/metrics"
	"github.com/rxtech-lab/argo-trend/internal/notification"
	"github.com/rxtech-lab/argo-trend/internal/report"
	"github.com/rxtech-lab/argo-trend/internal/strategy"
	"github.com/rxtech-lab/argo-trend/internal/trading"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"go.uber.org/zap"
)

// Options are the collaborators of an Engine. Nil values are built from the
// RunConfig. The engine owns what it is given and closes it in Close, or
// when NewEngine fails.
type Options struct {
	DataSource datasource.DataSource
	Executor   trading.Executor
	Marker     marker.Marker
	// Notifiers replace the sinks named by the notification config
	Notifiers []notification.Notifier
	// Metrics is optional
	Metrics *metrics.Metrics
	// Renderer prints one line per period when set
	Renderer *report.Renderer
	Logger   *logger.Logger
	// OnProgress is called after each period with the processed and expected counts
	OnProgress func(processed int, total int)
}

// Summary describes a finished or interrupted run.
type Summary struct {
	Periods     int         `json:"periods"`
	Preroll     int         `json:"preroll"`
	Buys        int         `json:"buys"`
	Sells       int         `json:"sells"`
	Latches     int         `json:"latches"`
	Fills       int         `json:"fills"`
	FailedFills int         `json:"failed_fills"`
	Trend       types.Trend `json:"trend"`
	FirstBar    time.Time   `json:"first_bar"`
	LastBar     time.Time   `json:"last_bar"`
}

// Engine drives one run.
type Engine struct {
	config     RunConfig
	selector   types.Selector
	strategy   *strategy.TrendEMADEMA
	source     datasource.DataSource
	executor   trading.Executor
	marker     marker.Marker
	dispatcher *notification.Dispatcher
	metrics    *metrics.Metrics
	renderer   *report.Renderer
	logger     *logger.Logger
	onProgress func(processed int, total int)
}

// NewEngine validates config and wires the run collaborators.
func NewEngine(config RunConfig, options Options) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	selector, err := types.ParseSelector(config.Selector)
	if err != nil {
		return nil, err
	}

	log := options.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	engine := &Engine{
		config:     config,
		selector:   selector,
		source:     options.DataSource,
		executor:   options.Executor,
		marker:     options.Marker,
		metrics:    options.Metrics,
		renderer:   options.Renderer,
		logger:     log,
		onProgress: options.OnProgress,
	}

	if engine.source == nil {
		source, err := newDataSource(config, selector, log)
		if err != nil {
			engine.release()

			return nil, err
		}

		engine.source = source
	}

	if engine.executor == nil {
		engine.executor = trading.NewPaperExecutor(log.Named("executor"))
	}

	if engine.marker == nil {
		duckdbMarker, err := marker.NewDuckDBMarker(log.Named("marker"))
		if err != nil {
			engine.release()

			return nil, errors.Wrap(errors.ErrCodeEngineInitFailed, "failed to create marker", err)
		}

		engine.marker = duckdbMarker
	}

	notifiers := options.Notifiers
	if notifiers == nil {
		notifiers, err = config.Notification.Notifiers(log.Named("notification"))
		if err != nil {
			engine.release()

			return nil, errors.Wrap(errors.ErrCodeEngineInitFailed, "failed to create notifiers", err)
		}
	}

	engine.dispatcher = notification.NewDispatcher(config.Mode, config.Notification.BufferSize, log, notifiers...)

	engine.strategy, err = strategy.NewTrendEMADEMA(config.Strategy, strategy.Options{
		Selector: selector,
		Notifier: engine.dispatcher,
		Logger:   log.Named(strategy.Name),
		Silent:   config.Silent,
	})
	if err != nil {
		engine.release()

		return nil, err
	}

	return engine, nil
}

func newDataSource(config RunConfig, selector types.Selector, log *logger.Logger) (datasource.DataSource, error) {
	period, err := config.Strategy.PeriodDuration()
	if err != nil {
		return nil, err
	}

	symbol := config.Data.Symbol
	if symbol == "" {
		symbol = selector.Symbol()
	}

	switch config.Data.Source {
	case DataSourceBinance:
		return datasource.NewBinanceDataSource(selector, period, log.Named("binance"))
	case DataSourceFile:
		return datasource.NewDuckDBDataSource(config.Data.Path, datasource.DuckDBOptions{
			Symbol:   symbol,
			Interval: period,
		}, log.Named("datasource"))
	default:
		return nil, errors.Newf(errors.ErrCodeEngineNoDatasource, "unknown data source %q", config.Data.Source)
	}
}

// Dispatcher exposes the notification counters.
func (e *Engine) Dispatcher() *notification.Dispatcher {
	return e.dispatcher
}

// Strategy returns the running strategy.
func (e *Engine) Strategy() *strategy.TrendEMADEMA {
	return e.strategy
}

// Count returns the number of bars the run expects to read.
func (e *Engine) Count() (int, error) {
	return e.source.Count(e.config.Data.StartTime, e.config.Data.EndTime)
}

// Run processes every bar of the source in order. Cancelling ctx stops the
// run between periods; the summary of the periods done so far is returned
// with the context error.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Trend: types.TrendNone}

	total, err := e.Count()
	if err != nil {
		e.logger.Warn("Failed to count bars", zap.Error(err))
	}

	e.logger.Info("Starting run",
		zap.String("strategy", strategy.Name),
		zap.String("mode", string(e.config.Mode)),
		zap.String("selector", e.selector.String()),
		zap.String("period", e.config.Strategy.Period),
		zap.Int("bars", total),
	)

	last := optional.None[time.Time]()

	for bar, err := range e.source.ReadAll(ctx, e.config.Data.StartTime, e.config.Data.EndTime) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		if err != nil {
			return summary, err
		}

		if last.IsSome() && !bar.Time.After(last.Unwrap()) {
			return summary, errors.Newf(errors.ErrCodeOutOfOrderData, "bar at %s is not after %s", bar.Time, last.Unwrap())
		}

		last = optional.Some(bar.Time)

		if err := e.period(ctx, bar, &summary); err != nil {
			return summary, err
		}

		if e.onProgress != nil {
			e.onProgress(summary.Periods, total)
		}
	}

	e.logger.Info("Run finished",
		zap.Int("periods", summary.Periods),
		zap.Int("buys", summary.Buys),
		zap.Int("sells", summary.Sells),
		zap.Int("fills", summary.Fills),
		zap.String("trend", summary.Trend.String()),
	)

	if e.config.ResultsDir != "" {
		if err := e.writeResults(summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// period runs one bar through the strategy and acts on the decision.
func (e *Engine) period(ctx context.Context, bar types.MarketData, summary *Summary) error {
	began := time.Now()
	result := e.strategy.OnPeriod(bar)

	if summary.Periods == 0 {
		summary.FirstBar = bar.Time
	}

	summary.Periods++
	summary.LastBar = bar.Time
	summary.Trend = result.Trend

	if result.Decision.Branch == strategy.BranchPreroll {
		summary.Preroll++
	}

	for _, event := range result.Latches {
		summary.Latches++

		if e.metrics != nil {
			e.metrics.LatchesTotal.WithLabelValues(string(event.Kind)).Inc()
		}

		if err := e.marker.Mark(marker.LatchMark(e.selector.Symbol(), bar.Time, bar.Close, string(event.Kind), event.Message())); err != nil {
			e.logger.Warn("Failed to mark latch", zap.Error(err))
		}
	}

	if result.Decision.Signal.IsAction() {
		e.act(ctx, result, summary)
	}

	if e.metrics != nil {
		e.metrics.PeriodsTotal.Inc()
		e.metrics.LastClose.Set(bar.Close)
		e.metrics.PeriodDuration.Observe(time.Since(began).Seconds())

		if result.Decision.Branch == strategy.BranchPreroll {
			e.metrics.PrerollTotal.Inc()
		}
	}

	if e.renderer != nil {
		if err := e.renderer.Print(result); err != nil {
			return errors.Wrap(errors.ErrCodeUnknown, "failed to print period", err)
		}
	}

	return nil
}

// act marks and executes an emitted signal. A fill acknowledges the trade.
func (e *Engine) act(ctx context.Context, result strategy.Result, summary *Summary) {
	signal := result.Signal(e.selector.Symbol())

	if signal.Type == types.SignalTypeBuy {
		summary.Buys++
	} else {
		summary.Sells++
	}

	e.logger.Info("Signal",
		zap.String("signal", signal.Type.String()),
		zap.String("branch", signal.Reason),
		zap.Float64("price", signal.Price),
		zap.Time("time", signal.Time),
	)

	if e.metrics != nil {
		e.metrics.SignalsTotal.WithLabelValues(signal.Type.String(), signal.Reason).Inc()
	}

	if err := e.marker.Mark(marker.SignalMark(signal, result.Decision.Notice)); err != nil {
		e.logger.Warn("Failed to mark signal", zap.Error(err))
	}

	fill, err := e.executor.Execute(ctx, signal)
	if err != nil {
		summary.FailedFills++

		e.logger.Warn("Failed to execute signal", zap.String("signal", signal.Type.String()), zap.Error(err))

		return
	}

	e.strategy.AcknowledgeTrade()
	summary.Fills++

	if e.metrics != nil {
		e.metrics.FillsTotal.WithLabelValues(string(fill.Side)).Inc()
	}

	e.logger.Debug("Trade acknowledged", zap.String("fill", fill.Id))
}

func (e *Engine) writeResults(summary Summary) error {
	dir := e.config.ResultsDir

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeEngineNoResults, err, "failed to create %s", dir)
	}

	if err := e.marker.Write(dir); err != nil {
		return err
	}

	for name, value := range map[string]any{
		"fills.json":   e.executor.Fills(),
		"summary.json": summary,
	} {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrCodeEngineNoResults, err, "failed to encode %s", name)
		}

		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return errors.Wrapf(errors.ErrCodeEngineNoResults, err, "failed to write %s", name)
		}
	}

	e.logger.Info("Results written", zap.String("dir", dir))

	return nil
}

// Close drains pending notifications within ctx and releases the source and marker.
func (e *Engine) Close(ctx context.Context) error {
	var first error

	if e.dispatcher != nil {
		if err := e.dispatcher.Close(ctx); err != nil {
			first = err
		}
	}

	if e.source != nil {
		if err := e.source.Close(); err != nil && first == nil {
			first = err
		}
	}

	if e.marker != nil {
		if err := e.marker.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// release closes whatever a failed NewEngine had already built.
func (e *Engine) release() {
	if err := e.Close(context.Background()); err != nil {
		e.logger.Warn("Failed to release engine", zap.Error(err))
	}
}
