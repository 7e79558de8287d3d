// Package metrics exports paging and mutation metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

// Recorder implements paging.Recorder on Prometheus collectors.
type Recorder struct {
	logger *zap.Logger

	fetches    *prometheus.CounterVec
	fetchItems *prometheus.HistogramVec
	latency    *prometheus.HistogramVec
	counts     *prometheus.CounterVec
	mutations  *prometheus.CounterVec
}

var _ paging.Recorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer, l *zap.Logger) (*Recorder, error) {
	if l == nil {
		l = zap.NewNop()
	}
	r := &Recorder{
		logger: l,
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopcat",
			Name:      "page_fetches_total",
			Help:      "Page fetches by filter kind and outcome.",
		}, []string{"filter", "outcome"}),
		fetchItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopcat",
			Name:      "page_items",
			Help:      "Documents returned per page fetch.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"filter"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopcat",
			Name:      "page_fetch_duration_milliseconds",
			Help:      "Page fetch latency, including offset emulation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"filter"}),
		counts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopcat",
			Name:      "count_queries_total",
			Help:      "Total-count queries by filter kind and outcome.",
		}, []string{"filter", "outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopcat",
			Name:      "mutations_total",
			Help:      "Catalog writes by operation and outcome.",
		}, []string{"op", "outcome"}),
	}

	for _, c := range []prometheus.Collector{r.fetches, r.fetchItems, r.latency, r.counts, r.mutations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveFetch records one page fetch.
func (r *Recorder) ObserveFetch(kind paging.FilterKind, items int, elapsed time.Duration, err error) {
	filter := kind.String()
	r.fetches.WithLabelValues(filter, outcome(err)).Inc()
	if err != nil {
		return
	}
	r.fetchItems.WithLabelValues(filter).Observe(float64(items))
	r.latency.WithLabelValues(filter).Observe(float64(elapsed.Milliseconds()))
}

// ObserveCount records one total-count query.
func (r *Recorder) ObserveCount(kind paging.FilterKind, err error) {
	r.counts.WithLabelValues(kind.String(), outcome(err)).Inc()
}

// ObserveMutation records the result of a write.
func (r *Recorder) ObserveMutation(op string, err error) {
	r.mutations.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		r.logger.Sugar().Debugw("mutation failed", zap.String("op", op), zap.Error(err))
	}
}
