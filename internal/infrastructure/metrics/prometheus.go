package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "token_creator"

// PrometheusRecorder implements port.MetricsRecorder with Prometheus collectors.
type PrometheusRecorder struct {
	walletConnects   *prometheus.CounterVec
	tokenCreations   *prometheus.CounterVec
	creationDuration prometheus.Histogram
	notifications    *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	httpRequests     *prometheus.HistogramVec
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		walletConnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_connects_total",
			Help:      "Wallet connect attempts by outcome.",
		}, []string{"outcome"}),
		tokenCreations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_creations_total",
			Help:      "Finished token creation workflows by outcome.",
		}, []string{"outcome"}),
		creationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "token_creation_duration_seconds",
			Help:      "Duration of token creation workflows.",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 10},
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown by kind.",
		}, []string{"kind"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Browser sessions currently held in memory.",
		}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		r.walletConnects,
		r.tokenCreations,
		r.creationDuration,
		r.notifications,
		r.activeSessions,
		r.httpRequests,
	)
	return r
}

// WalletConnect counts a connect attempt.
func (r *PrometheusRecorder) WalletConnect(outcome string) {
	r.walletConnects.WithLabelValues(outcome).Inc()
}

// TokenCreation counts a finished workflow and observes its duration.
func (r *PrometheusRecorder) TokenCreation(outcome string, duration time.Duration) {
	r.tokenCreations.WithLabelValues(outcome).Inc()
	r.creationDuration.Observe(duration.Seconds())
}

// Notification counts a shown notification.
func (r *PrometheusRecorder) Notification(kind string) {
	r.notifications.WithLabelValues(kind).Inc()
}

// ActiveSessions sets the session gauge.
func (r *PrometheusRecorder) ActiveSessions(count int) {
	r.activeSessions.Set(float64(count))
}

// HTTPRequest observes a served request.
func (r *PrometheusRecorder) HTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
