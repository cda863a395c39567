// Package metrics provides Prometheus counters for a build run. A run is a
// short-lived process, so metrics are exported to a node_exporter textfile
// instead of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Download results
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultMismatch = "mismatch"
)

// Build kinds
const (
	KindPrimary   = "primary"
	KindSecondary = "secondary"
)

// Recorder records run metrics on its own registry. All methods are safe on
// a nil Recorder, which records nothing.
type Recorder struct {
	registry *prometheus.Registry

	DownloadsTotal      *prometheus.CounterVec
	DownloadBytes       prometheus.Counter
	DownloadDuration    prometheus.Histogram
	CacheHitsTotal      prometheus.Counter
	VerifyFailuresTotal prometheus.Counter
	BuildsTotal         *prometheus.CounterVec
	BuildDuration       *prometheus.HistogramVec
	ContractViolations  prometheus.Counter
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		DownloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcbuilder_downloads_total",
				Help: "Total number of file downloads by result",
			},
			[]string{"result"},
		),
		DownloadBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcbuilder_download_bytes_total",
				Help: "Total bytes written by downloads",
			},
		),
		DownloadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arcbuilder_download_duration_seconds",
				Help:    "Time taken per file download",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
			},
		),
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcbuilder_cache_hits_total",
				Help: "Total number of cached files that passed verification",
			},
		),
		VerifyFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcbuilder_verify_failures_total",
				Help: "Total number of files that failed hash or size verification",
			},
		),
		BuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arcbuilder_builds_total",
				Help: "Total number of build tool invocations",
			},
			[]string{"kind", "result"},
		),
		BuildDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arcbuilder_build_duration_seconds",
				Help:    "Duration of build tool invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ContractViolations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "arcbuilder_contract_violations_total",
				Help: "Total number of grouping keys whose core id is not selected",
			},
		),
	}
}

// Registry returns the registry the counters live on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordDownload records one download attempt.
func (r *Recorder) RecordDownload(result string, bytes int64, duration time.Duration) {
	if r == nil {
		return
	}
	r.DownloadsTotal.WithLabelValues(result).Inc()
	if bytes > 0 {
		r.DownloadBytes.Add(float64(bytes))
	}
	r.DownloadDuration.Observe(duration.Seconds())
}

// RecordCacheHit records a cached file that verified.
func (r *Recorder) RecordCacheHit() {
	if r == nil {
		return
	}
	r.CacheHitsTotal.Inc()
}

// RecordVerifyFailure records a cached or downloaded file that did not verify.
func (r *Recorder) RecordVerifyFailure() {
	if r == nil {
		return
	}
	r.VerifyFailuresTotal.Inc()
}

// RecordBuild records one build tool invocation.
func (r *Recorder) RecordBuild(kind string, ok bool, duration time.Duration) {
	if r == nil {
		return
	}
	result := ResultOK
	if !ok {
		result = ResultFailed
	}
	r.BuildsTotal.WithLabelValues(kind, result).Inc()
	r.BuildDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordContractViolation records a skipped grouping key.
func (r *Recorder) RecordContractViolation() {
	if r == nil {
		return
	}
	r.ContractViolations.Inc()
}

// WriteTextfile writes every metric to path in the text exposition format.
// An empty path writes nothing.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
