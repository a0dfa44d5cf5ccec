package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects per-run counters. Each run owns its own registry so the
// exported textfile reflects that run only.
type Recorder struct {
	registry *prometheus.Registry

	items        *prometheus.CounterVec
	stages       *prometheus.CounterVec
	translations *prometheus.CounterVec
	fillers      prometheus.Counter
	lastRun      prometheus.Gauge
	duration     prometheus.Gauge

	mu        sync.Mutex
	lastError string
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ainexus_items_total",
			Help: "News items collected per source.",
		}, []string{"source"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ainexus_cascade_stage_total",
			Help: "Summary cascade stage outcomes.",
		}, []string{"stage", "outcome"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ainexus_translations_total",
			Help: "Translation attempts per provider and result.",
		}, []string{"provider", "result"}),
		fillers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ainexus_fillers_added",
			Help: "Filler items added to reach the target count.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ainexus_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ainexus_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
	}
	r.registry.MustRegister(r.items, r.stages, r.translations, r.fillers, r.lastRun, r.duration)
	return r
}

func (r *Recorder) IncItems(source string, n int) {
	r.items.WithLabelValues(source).Add(float64(n))
}

func (r *Recorder) IncStage(stage, outcome string) {
	r.stages.WithLabelValues(stage, outcome).Inc()
}

func (r *Recorder) IncTranslation(provider, result string) {
	r.translations.WithLabelValues(provider, result).Inc()
}

func (r *Recorder) AddFillers(n int) {
	r.fillers.Add(float64(n))
}

func (r *Recorder) RecordRun(started time.Time) {
	r.duration.Set(time.Since(started).Seconds())
	r.lastRun.SetToCurrentTime()
}

func (r *Recorder) SetError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastError = err
}

func (r *Recorder) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// WriteTextfile exports the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
