// Package metrics exposes prometheus instruments for graph builds, path
// queries and agent movement.
package metrics

import (
	"net/http"
	"time"

	"github.com/milk9111/tilepath/common"
	"github.com/milk9111/tilepath/movement"
	"github.com/milk9111/tilepath/pathfind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tilepath"

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	GraphBuilds   prometheus.Counter
	GraphPoints   prometheus.Gauge
	GraphEdges    *prometheus.GaugeVec
	BuildDuration prometheus.Histogram

	PathQueries   *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	PathLength    prometheus.Histogram

	Jumps   *prometheus.CounterVec
	Repaths *prometheus.CounterVec
	Ticks   prometheus.Counter
}

// New registers the instruments with reg. A nil reg creates them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GraphBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_builds_total",
			Help:      "Navigation graphs built.",
		}),
		GraphPoints: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_points",
			Help:      "Points in the current navigation graph.",
		}),
		GraphEdges: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the current navigation graph by kind.",
		}, []string{"kind"}),
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_build_duration_seconds",
			Help:      "Time to classify, register and connect a level.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		PathQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_queries_total",
			Help:      "Path queries by result.",
		}, []string{"result"}),
		QueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_query_duration_seconds",
			Help:      "Path query latency.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14),
		}),
		PathLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_waypoints",
			Help:      "Waypoints per returned path.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		}),
		Jumps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jumps_total",
			Help:      "Jumps started by agent and tier.",
		}, []string{"agent", "tier"}),
		Repaths: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repaths_total",
			Help:      "Path requests issued by agents.",
		}, []string{"agent"}),
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sim_ticks_total",
			Help:      "Fixed simulation steps run.",
		}),
	}
}

func (m *Metrics) ObserveBuild(stats pathfind.Stats, d time.Duration) {
	if m == nil {
		return
	}
	m.GraphBuilds.Inc()
	m.GraphPoints.Set(float64(stats.Points))
	m.GraphEdges.Reset()
	for _, kind := range []pathfind.EdgeKind{pathfind.EdgeWalk, pathfind.EdgePlatformJump, pathfind.EdgeDiagonalJump, pathfind.EdgeFall} {
		m.GraphEdges.WithLabelValues(kind.String()).Set(float64(stats.ByKind[kind]))
	}
	m.BuildDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveQuery(waypoints int, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.QueryDuration.Observe(d.Seconds())
	switch {
	case err != nil:
		m.PathQueries.WithLabelValues("error").Inc()
	case waypoints == 0:
		m.PathQueries.WithLabelValues("empty").Inc()
	default:
		m.PathQueries.WithLabelValues("found").Inc()
		m.PathLength.Observe(float64(waypoints))
	}
}

func (m *Metrics) ObserveJump(agent string, tier movement.JumpTier) {
	if m == nil || tier == movement.NoJump {
		return
	}
	m.Jumps.WithLabelValues(agent, tier.String()).Inc()
}

func (m *Metrics) ObserveRepath(agent string) {
	if m == nil {
		return
	}
	m.Repaths.WithLabelValues(agent).Inc()
}

func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.Ticks.Inc()
}

// Pather wraps p so every query is timed and counted.
func (m *Metrics) Pather(p movement.Pather) movement.Pather {
	if m == nil {
		return p
	}
	return &instrumentedPather{next: p, m: m}
}

type instrumentedPather struct {
	next movement.Pather
	m    *Metrics
}

func (p *instrumentedPather) RequestPath(start, goal common.Vec) (pathfind.Path, error) {
	began := time.Now()
	path, err := p.next.RequestPath(start, goal)
	p.m.ObserveQuery(path.Len(), err, time.Since(began))
	return path, err
}

// Handler serves the gathered metrics in the text exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
