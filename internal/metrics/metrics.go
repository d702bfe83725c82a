package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

// Recorder collects simulation metrics on its own registry. A nil
// *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	treeOutcomes *prometheus.CounterVec
	pathLookups  *prometheus.CounterVec
	agents       *prometheus.GaugeVec
	wave         prometheus.Gauge
	baseHealth   prometheus.Gauge
	reloads      *prometheus.CounterVec
}

// New creates a Recorder. withRuntime adds the Go and process collectors.
func New(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tst_ticks_total",
			Help: "Simulation ticks executed.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tst_tick_duration_seconds",
			Help:    "Wall time spent in one simulation tick.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		treeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tst_tree_outcomes_total",
			Help: "Behavior tree tick results by agent kind and state.",
		}, []string{"agent", "state"}),
		pathLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tst_path_lookups_total",
			Help: "Path cache lookups by cache and outcome.",
		}, []string{"cache", "outcome"}),
		agents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tst_agents",
			Help: "Live agents by kind.",
		}, []string{"agent"}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tst_wave",
			Help: "Current wave number.",
		}),
		baseHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tst_base_health",
			Help: "Remaining base health.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tst_definition_reloads_total",
			Help: "Definition reload attempts by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(
		r.ticks, r.tickDuration, r.treeOutcomes, r.pathLookups,
		r.agents, r.wave, r.baseHealth, r.reloads,
	)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// Registry exposes the underlying registry for tests and custom handlers.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordTick(seconds float64) {
	if r == nil {
		return
	}
	r.ticks.Inc()
	r.tickDuration.Observe(seconds)
}

func (r *Recorder) RecordTree(agent string, s bt.State) {
	if r == nil {
		return
	}
	r.treeOutcomes.WithLabelValues(agent, s.String()).Inc()
}

func (r *Recorder) RecordPathLookup(cache string, o tilemap.Outcome) {
	if r == nil {
		return
	}
	r.pathLookups.WithLabelValues(cache, o.String()).Inc()
}

func (r *Recorder) SetAgents(agent string, n int) {
	if r == nil {
		return
	}
	r.agents.WithLabelValues(agent).Set(float64(n))
}

func (r *Recorder) SetWave(n int) {
	if r == nil {
		return
	}
	r.wave.Set(float64(n))
}

func (r *Recorder) SetBaseHealth(n int) {
	if r == nil {
		return
	}
	r.baseHealth.Set(float64(n))
}

func (r *Recorder) RecordReload(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.reloads.WithLabelValues(result).Inc()
}
