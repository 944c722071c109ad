package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

var SchemasEmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cts_schemas_emitted_total",
	Help: "The total number of schemas written to the schema module",
})

var FieldsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cts_fields_dropped_total",
	Help: "The total number of source fields without a target field",
})

var DocumentsProduced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cts_documents_produced_total",
	Help: "The total number of documents produced",
})

var DocumentsSkipped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cts_documents_skipped_total",
	Help: "The total number of unchanged documents skipped by an incremental run",
})

var LinksUnresolved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cts_links_unresolved_total",
	Help: "The total number of links whose target is missing from the export",
})

var TransformDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "cts_transform_duration_seconds",
	Help:    "The duration of transforming one entry for one locale",
	Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
})

// RunStats is a snapshot of the run metrics.
type RunStats struct {
	SchemasEmitted    float64 `json:"schemasEmitted"`
	FieldsDropped     float64 `json:"fieldsDropped"`
	DocumentsProduced float64 `json:"documentsProduced"`
	DocumentsSkipped  float64 `json:"documentsSkipped"`
	LinksUnresolved   float64 `json:"linksUnresolved"`
	Transforms        float64 `json:"transforms"`
}

// collect calls the function for each metric associated with the Collector
func collect(col prometheus.Collector, do func(*dto.Metric)) {
	c := make(chan prometheus.Metric)
	go func(c chan prometheus.Metric) {
		col.Collect(c)
		close(c)
	}(c)
	for x := range c {
		m := dto.Metric{}
		_ = x.Write(&m)
		do(&m)
	}
}

// getMetricValue returns the sum of the Counter metrics associated with the Collector.
// If the metric is a Histogram then number of samples is used.
func getMetricValue(col prometheus.Collector) float64 {
	var total float64
	collect(col, func(m *dto.Metric) {
		if h := m.GetHistogram(); h != nil {
			total += float64(h.GetSampleCount())
		} else {
			total += m.GetCounter().GetValue()
		}
	})
	return total
}

// GetRunStats returns a snapshot of the run metrics.
func GetRunStats() RunStats {
	return RunStats{
		SchemasEmitted:    getMetricValue(SchemasEmitted),
		FieldsDropped:     getMetricValue(FieldsDropped),
		DocumentsProduced: getMetricValue(DocumentsProduced),
		DocumentsSkipped:  getMetricValue(DocumentsSkipped),
		LinksUnresolved:   getMetricValue(LinksUnresolved),
		Transforms:        getMetricValue(TransformDuration),
	}
}
