// Package metrics exposes Prometheus instrumentation for solve traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes used as the status label.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusTooShort = "too_short"
	StatusError    = "error"
)

var (
	// requestsTotal counts requests by source (server, cli) and action.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordsolve",
		Name:      "requests_total",
		Help:      "Total requests handled",
	}, []string{"source", "action"})

	// solvesTotal counts solve attempts by outcome.
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordsolve",
		Subsystem: "solve",
		Name:      "total",
		Help:      "Total solve attempts by status",
	}, []string{"source", "status"})

	solveLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordsolve",
		Subsystem: "solve",
		Name:      "latency_seconds",
		Help:      "Solve latency in seconds",
		Buckets:   []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005, 0.01},
	}, []string{"source"})

	solveMatches = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordsolve",
		Subsystem: "solve",
		Name:      "matches",
		Help:      "Words found per solve",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
	}, []string{"source"})

	// indexWords is the word count of the loaded index.
	indexWords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordsolve",
		Subsystem: "index",
		Name:      "words",
		Help:      "Words in the loaded index",
	})

	indexSignatures = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordsolve",
		Subsystem: "index",
		Name:      "signatures",
		Help:      "Signatures in the loaded index",
	})
)

// RecordRequest counts one request.
func RecordRequest(source, action string) {
	requestsTotal.WithLabelValues(source, action).Inc()
}

// RecordSolve records the outcome of one solve.
func RecordSolve(source, status string, elapsed time.Duration, matches int) {
	solvesTotal.WithLabelValues(source, status).Inc()
	if status != StatusOK {
		return
	}
	solveLatency.WithLabelValues(source).Observe(elapsed.Seconds())
	solveMatches.WithLabelValues(source).Observe(float64(matches))
}

// SetIndexSize publishes the shape of the loaded index.
func SetIndexSize(signatures, words int) {
	indexSignatures.Set(float64(signatures))
	indexWords.Set(float64(words))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
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

	log.Debugf("Serving metrics on http://%s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
