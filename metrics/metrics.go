// Package metrics counts player engine events and serves them to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/babua-dev/clipper/clip"
	"github.com/babua-dev/clipper/engine"
	"github.com/babua-dev/clipper/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Metrics holds the engine counters. It satisfies engine.Observer.
type Metrics struct {
	registry           *prometheus.Registry
	playersConstructed prometheus.Counter
	completions        *prometheus.CounterVec
	correctiveSeeks    prometheus.Counter
	sampleFailures     prometheus.Counter
	playbackErrors     prometheus.Counter
}

var _ engine.Observer = (*Metrics)(nil)

// New creates the counters on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	playersConstructed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipper_players_constructed_total",
		Help: "Total number of player instances constructed",
	})
	completions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clipper_clip_completions_total",
		Help: "Total number of clips played through to their end boundary",
	}, []string{"source_id"})
	correctiveSeeks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipper_corrective_seeks_total",
		Help: "Total number of seeks issued because playback drifted before the clip start",
	})
	sampleFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipper_sample_failures_total",
		Help: "Total number of position samples that failed and were skipped",
	})
	playbackErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipper_playback_errors_total",
		Help: "Total number of load or playback failures",
	})

	registry.MustRegister(
		playersConstructed,
		completions,
		correctiveSeeks,
		sampleFailures,
		playbackErrors,
	)

	return &Metrics{
		registry:           registry,
		playersConstructed: playersConstructed,
		completions:        completions,
		correctiveSeeks:    correctiveSeeks,
		sampleFailures:     sampleFailures,
		playbackErrors:     playbackErrors,
	}
}

func (m *Metrics) PlayerConstructed() {
	m.playersConstructed.Inc()
}

func (m *Metrics) Completed(w clip.Window) {
	m.completions.WithLabelValues(w.SourceID).Inc()
}

func (m *Metrics) CorrectiveSeek() {
	m.correctiveSeeks.Inc()
}

func (m *Metrics) SampleFailed() {
	m.sampleFailures.Inc()
}

func (m *Metrics) PlaybackFailed() {
	m.playbackErrors.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Router exposes /metrics and /healthz.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/metrics", m.Handler().ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Serve listens on addr until ctx is done. It returns once the listener is
// running; listen errors after that are logged.
func (m *Metrics) Serve(ctx context.Context, addr string) {
	srv := &http.Server{Addr: addr, Handler: m.Router()}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("metrics server shutdown: %v", err)
		}
	}()

	log.Infof("metrics server listening on %s", addr)
}
