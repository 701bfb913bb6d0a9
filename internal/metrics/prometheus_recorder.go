package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                 *prom.Registry
	filesIndexed        *prom.CounterVec
	duplicates          *prom.CounterVec
	dateFallbacks       *prom.CounterVec
	frontMatterWarnings *prom.CounterVec
	indexDuration       *prom.HistogramVec
	buildDuration       prom.Histogram
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh registry
// when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		filesIndexed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_indexed_total",
			Help:      "Content files turned into records",
		}, []string{"scope", "kind"}),
		duplicates: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_slugs_total",
			Help:      "Files dropped because an earlier file produced the same slug",
		}, []string{"scope"}),
		dateFallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "date_fallbacks_total",
			Help:      "Record dates not taken from git history",
		}, []string{"field", "source"}),
		frontMatterWarnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "frontmatter_warnings_total",
			Help:      "Malformed front matter blocks treated as empty",
		}, []string{"kind"}),
		indexDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "index_duration_seconds",
			Help:      "Duration of a single index scope build",
			Buckets:   prom.DefBuckets,
		}, []string{"scope"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total export duration",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.filesIndexed, pr.duplicates, pr.dateFallbacks, pr.frontMatterWarnings, pr.indexDuration, pr.buildDuration)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncFilesIndexed(scope, kind string) {
	p.filesIndexed.WithLabelValues(scope, kind).Inc()
}

func (p *PrometheusRecorder) IncDuplicate(scope string) {
	p.duplicates.WithLabelValues(scope).Inc()
}

func (p *PrometheusRecorder) IncDateFallback(field, source string) {
	p.dateFallbacks.WithLabelValues(field, source).Inc()
}

func (p *PrometheusRecorder) IncFrontMatterWarning(kind string) {
	p.frontMatterWarnings.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveIndexDuration(scope string, d time.Duration) {
	p.indexDuration.WithLabelValues(scope).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

// WriteTextfile writes all gathered metrics to path in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
