package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type fakeStats struct {
	sent, dropped, failed int64
}

func (f *fakeStats) Sent() int64    { return f.sent }
func (f *fakeStats) Dropped() int64 { return f.dropped }
func (f *fakeStats) Failed() int64  { return f.failed }

type MetricsTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	metrics  *Metrics
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) SetupTest() {
	suite.registry = prometheus.NewRegistry()
	suite.metrics = NewMetrics(suite.registry)
}

func (suite *MetricsTestSuite) TestCounters() {
	suite.metrics.PeriodsTotal.Inc()
	suite.metrics.PeriodsTotal.Inc()
	suite.metrics.SignalsTotal.WithLabelValues("buy", "bullish_crossover").Inc()
	suite.metrics.LastClose.Set(101.5)

	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.PeriodsTotal))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.SignalsTotal.WithLabelValues("buy", "bullish_crossover")))
	suite.Equal(0.0, testutil.ToFloat64(suite.metrics.SignalsTotal.WithLabelValues("sell", "bearish_crossover")))
	suite.Equal(101.5, testutil.ToFloat64(suite.metrics.LastClose))
}

func (suite *MetricsTestSuite) TestRegisterTwicePanics() {
	suite.Panics(func() {
		NewMetrics(suite.registry)
	})
}

func (suite *MetricsTestSuite) TestNotificationStats() {
	stats := &fakeStats{sent: 3, dropped: 1}
	RegisterNotificationStats(suite.registry, stats)

	stats.failed = 2

	expected := `
# HELP argo_trend_notifications_failed_total Notification sink failures
# TYPE argo_trend_notifications_failed_total counter
argo_trend_notifications_failed_total 2
# HELP argo_trend_notifications_sent_total Notifications delivered to every sink
# TYPE argo_trend_notifications_sent_total counter
argo_trend_notifications_sent_total 3
`
	suite.NoError(testutil.GatherAndCompare(suite.registry, strings.NewReader(expected),
		"argo_trend_notifications_sent_total", "argo_trend_notifications_failed_total"))
}

func (suite *MetricsTestSuite) TestServerHandler() {
	suite.metrics.PeriodsTotal.Inc()

	server := NewServer(":0", suite.registry, nil)

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Equal(http.StatusOK, recorder.Code)
	suite.Contains(recorder.Body.String(), "argo_trend_periods_total 1")

	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	suite.Equal(http.StatusOK, recorder.Code)
	suite.Equal("ok", recorder.Body.String())
}
