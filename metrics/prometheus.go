package metrics

import (
	"context"
	"go-card-bank/logger"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector counts console commands and tracks open accounts on its
// own registry.
type MetricsCollector struct {
	registry        *prometheus.Registry
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	openAccounts    prometheus.Gauge
}

func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	return &MetricsCollector{
		registry: registry,
		commands: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "bank_commands_total",
			Help: "Console commands handled, by command and outcome",
		}, []string{"command", "outcome"}),
		commandDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_command_duration_seconds",
			Help:    "Time taken to handle a console command",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
		openAccounts: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "bank_open_accounts",
			Help: "Number of open card accounts",
		}),
	}
}

// RecordCommand counts one handled command. outcome is "ok" or an error kind.
func (m *MetricsCollector) RecordCommand(command, outcome string, duration time.Duration) {
	m.commands.WithLabelValues(command, outcome).Inc()
	m.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func (m *MetricsCollector) SetOpenAccounts(n int) {
	m.openAccounts.Set(float64(n))
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on addr in the background.
func (m *MetricsCollector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.GetHandler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.WithField("addr", addr).Info("Starting metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Error("Metrics server failed")
		}
	}()

	return server
}

// Shutdown stops a server started by StartMetricsServer.
func (m *MetricsCollector) Shutdown(ctx context.Context, server *http.Server) error {
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
