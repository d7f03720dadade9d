// Package metrics exposes build statistics as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

const namespace = "azdo_buildstats"

// Metrics holds the collectors for one registry.
type Metrics struct {
	registry *prometheus.Registry

	builds          prometheus.Gauge
	projectFailures prometheus.Gauge
	buildFailures   prometheus.Gauge
	downtime        prometheus.Gauge
	definitions     *prometheus.GaugeVec
	lastUpdate      prometheus.Gauge

	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Builds finished in the last day.",
		}),
		projectFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "project_failures",
			Help:      "Failed builds of configured definitions in the last day.",
		}),
		buildFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_failures",
			Help:      "Build records in the last day divided by the number of configured definitions.",
		}),
		downtime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "downtime_minutes",
			Help:      "Estimated minutes configured definitions spent failing.",
		}),
		definitions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "definition_status",
			Help:      "Latest status per definition: 1 for the current status, 0 otherwise.",
		}, []string{"definition", "project", "status"}),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the last successful snapshot.",
		}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Build query duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"result"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Failed build queries.",
		}, []string{"project"}),
	}

	collectors := map[string]prometheus.Collector{
		"builds":          m.builds,
		"projectFailures": m.projectFailures,
		"buildFailures":   m.buildFailures,
		"downtime":        m.downtime,
		"definitions":     m.definitions,
		"lastUpdate":      m.lastUpdate,
		"queryDuration":   m.queryDuration,
		"queryErrors":     m.queryErrors,
	}
	for name, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register %s metric: %w", name, err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records a snapshot.
func (m *Metrics) Observe(s buildstats.Snapshot) {
	m.builds.Set(float64(s.Stats.TotalBuilds))
	m.projectFailures.Set(float64(s.Stats.TotalProjectFailures))
	m.buildFailures.Set(float64(s.Stats.TotalBuildFailures))
	m.downtime.Set(float64(s.DowntimeMinutes))

	m.definitions.Reset()
	for _, p := range s.Report.Projects {
		for _, status := range []buildstats.Status{buildstats.StatusSucceeded, buildstats.StatusFailed, buildstats.StatusOther} {
			value := 0.0
			if p.Status == status {
				value = 1
			}
			m.definitions.WithLabelValues(p.DefinitionName, p.ProjectName, status.String()).Set(value)
		}
	}

	if !s.FetchedAt.IsZero() {
		m.lastUpdate.Set(float64(s.FetchedAt.Unix()))
	}
}

// ObserveQuery records the duration and outcome of one build query.
func (m *Metrics) ObserveQuery(project string, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
		m.queryErrors.WithLabelValues(project).Inc()
	}
	m.queryDuration.WithLabelValues(result).Observe(d.Seconds())
}

// Instrument wraps a BuildSource so every query is timed.
func (m *Metrics) Instrument(source buildstats.BuildSource) buildstats.BuildSource {
	return &instrumentedSource{source: source, metrics: m, now: time.Now}
}

type instrumentedSource struct {
	source  buildstats.BuildSource
	metrics *Metrics
	now     func() time.Time
}

func (s *instrumentedSource) QueryBuilds(ctx context.Context, q buildstats.Query) ([]buildstats.BuildRecord, error) {
	start := s.now()
	records, err := s.source.QueryBuilds(ctx, q)
	s.metrics.ObserveQuery(q.TeamProject, s.now().Sub(start), err)
	return records, err
}
