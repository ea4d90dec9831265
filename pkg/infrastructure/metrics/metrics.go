// Package metrics provides Prometheus counters for reconciliation runs
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters of one process in a private registry
type Recorder struct {
	registry *prometheus.Registry

	RowsRead          *prometheus.CounterVec
	AmbiguousRows     prometheus.Counter
	ExpandedEntries   prometheus.Counter
	UnmatchedSubNames prometheus.Counter
	ValuesDecoded     *prometheus.CounterVec
	DecodeFailures    *prometheus.CounterVec
	ResolveDuration   prometheus.Histogram
}

// NewRecorder creates a recorder with all counters registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomforge_rows_read_total",
				Help: "Total number of input rows read",
			},
			[]string{"source"},
		),
		AmbiguousRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bomforge_ambiguous_rows_total",
			Help: "Total number of BOM rows naming more than one component",
		}),
		ExpandedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bomforge_expanded_entries_total",
			Help: "Total number of entries created by splitting ambiguous rows",
		}),
		UnmatchedSubNames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bomforge_unmatched_subnames_total",
			Help: "Total number of split names without any placement",
		}),
		ValuesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomforge_values_decoded_total",
				Help: "Total number of values decoded to a canonical magnitude",
			},
			[]string{"kind"},
		),
		DecodeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomforge_decode_failures_total",
				Help: "Total number of values that could not be decoded",
			},
			[]string{"reason"},
		),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bomforge_resolve_duration_seconds",
			Help:    "Time taken to resolve one BOM",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}

	r.registry.MustRegister(
		r.RowsRead,
		r.AmbiguousRows,
		r.ExpandedEntries,
		r.UnmatchedSubNames,
		r.ValuesDecoded,
		r.DecodeFailures,
		r.ResolveDuration,
	)
	return r
}

// Registry exposes the recorder's registry for gathering
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the node-exporter textfile format
func (r *Recorder) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", filename, err)
	}
	return nil
}
