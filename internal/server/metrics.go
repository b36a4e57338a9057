// Package server exposes run-time metrics over HTTP in Prometheus format.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/aliquot/internal/aliquot"
	"github.com/agbru/aliquot/internal/logging"
	"github.com/agbru/aliquot/internal/orchestration"
)

// Metrics registers and serves the application's Prometheus metrics. It
// implements orchestration.Observer so the coordinator can feed it without
// depending on this package.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	sequences   *prometheus.CounterVec
	inFlight    prometheus.Gauge
	cacheHits   prometheus.Gauge
	cacheMisses prometheus.Gauge
}

var _ orchestration.Observer = (*Metrics)(nil)

// NewMetrics creates a Metrics instance with its own registry, so multiple
// instances (e.g. in tests) never collide on global registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		sequences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aliquot_sequences_total",
			Help: "Number of classified aliquot sequences by classification.",
		}, []string{"classification"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aliquot_seeds_in_flight",
			Help: "Number of seeds currently being evaluated.",
		}),
		cacheHits: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aliquot_cache_hits",
			Help: "Cumulative hits of the shared sequence cache.",
		}),
		cacheMisses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aliquot_cache_misses",
			Help: "Cumulative misses of the shared sequence cache.",
		}),
	}
	reg.MustRegister(m.sequences, m.inFlight, m.cacheHits, m.cacheMisses)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// SeedStarted increments the in-flight gauge.
func (m *Metrics) SeedStarted() {
	m.inFlight.Inc()
}

// SeedFinished decrements the in-flight gauge and counts the classification.
func (m *Metrics) SeedFinished(c aliquot.Classification) {
	m.inFlight.Dec()
	m.sequences.WithLabelValues(c.String()).Inc()
}

// CacheStats records the shared cache's cumulative hit/miss counts.
func (m *Metrics) CacheStats(hits, misses uint64) {
	m.cacheHits.Set(float64(hits))
	m.cacheMisses.Set(float64(misses))
}

// ServeHTTP serves the metrics in Prometheus exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// ListenAndServe serves /metrics on addr until ctx is canceled. It blocks;
// callers run it in a goroutine alongside the batch.
func ListenAndServe(ctx context.Context, addr string, m *Metrics, log logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", logging.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
