// Package metrics exposes run counters for Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-trend/internal/logger"
	"go.uber.org/zap"
)

// Metrics holds the Prometheus collectors of one run.
type Metrics struct {
	PeriodsTotal   prometheus.Counter
	PrerollTotal   prometheus.Counter
	SignalsTotal   *prometheus.CounterVec // labels: signal, branch
	LatchesTotal   *prometheus.CounterVec // labels: kind
	FillsTotal     *prometheus.CounterVec // labels: side
	PeriodDuration prometheus.Histogram
	LastClose      prometheus.Gauge
}

// NotificationStats is read by the notification collectors on every scrape.
type NotificationStats interface {
	Sent() int64
	Dropped() int64
	Failed() int64
}

// NewMetrics creates and registers the run collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PeriodsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_trend_periods_total",
			Help: "Total periods evaluated",
		}),
		PrerollTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_trend_preroll_periods_total",
			Help: "Periods evaluated before min_periods was reached",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_trend_signals_total",
			Help: "Signals emitted by state machine branch",
		}, []string{"signal", "branch"}),
		LatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_trend_latches_total",
			Help: "RSI overbought and oversold latches",
		}, []string{"kind"}),
		FillsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_trend_fills_total",
			Help: "Signals filled by the executor",
		}, []string{"side"}),
		PeriodDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_trend_period_duration_seconds",
			Help:    "Time spent evaluating one period",
			Buckets: []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.01},
		}),
		LastClose: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "argo_trend_last_close",
			Help: "Close of the last evaluated period",
		}),
	}

	reg.MustRegister(
		m.PeriodsTotal,
		m.PrerollTotal,
		m.SignalsTotal,
		m.LatchesTotal,
		m.FillsTotal,
		m.PeriodDuration,
		m.LastClose,
	)

	return m
}

// RegisterNotificationStats exposes the dispatcher counters on reg.
func RegisterNotificationStats(reg prometheus.Registerer, stats NotificationStats) {
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "argo_trend_notifications_sent_total",
			Help: "Notifications delivered to every sink",
		}, func() float64 { return float64(stats.Sent()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "argo_trend_notifications_dropped_total",
			Help: "Notifications dropped because the queue was full or closed",
		}, func() float64 { return float64(stats.Dropped()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "argo_trend_notifications_failed_total",
			Help: "Notification sink failures",
		}, func() float64 { return float64(stats.Failed()) }),
	)
}

// Server serves /metrics and /healthz for a registry.
type Server struct {
	srv    *http.Server
	logger *logger.Logger
}

// NewServer creates a metrics server on addr. Gatherer is usually the registry passed to NewMetrics.
func NewServer(addr string, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Handler returns the server mux.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Metrics server listening", zap.String("addr", s.srv.Addr))

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
