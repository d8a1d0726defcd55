package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"locationservice/internal/models"
)

var (
	searchEventsDesc = prometheus.NewDesc(
		"locationservice_search_events_total",
		"Total recorded locate requests by owner and outcome",
		[]string{"owner", "outcome"},
		nil,
	)

	resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locationservice_resolutions_total",
			Help: "Call number resolutions by outcome and resolved tier",
		},
		[]string{"outcome", "tier"},
	)

	lookups = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "locationservice_resolution_lookups",
			Help:    "Store lookups made per call number resolution",
			Buckets: []float64{1, 3, 9, 18, 30, 60, 120, 165},
		},
	)
)

// EventCounter reads aggregated search event counts.
type EventCounter interface {
	CountSearchEvents(ctx context.Context) ([]models.SearchEventCount, error)
}

// SearchEventCollector is a custom Prometheus collector that reads search
// event counts from the database on each scrape.
type SearchEventCollector struct {
	counter EventCounter
	timeout time.Duration
}

// NewSearchEventCollector creates a collector over counter.
func NewSearchEventCollector(counter EventCounter) *SearchEventCollector {
	return &SearchEventCollector{counter: counter, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *SearchEventCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- searchEventsDesc
}

// Collect queries the database for event counts and emits them as counters.
func (c *SearchEventCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.counter.CountSearchEvents(ctx)
	if err != nil {
		slog.Error("failed to collect search event metrics", "error", err)
		return
	}
	for _, e := range counts {
		ch <- prometheus.MustNewConstMetric(
			searchEventsDesc,
			prometheus.CounterValue,
			float64(e.Count),
			e.Owner,
			e.Outcome,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup; later calls are ignored.
func Init(counter EventCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(resolutions, lookups)
		if counter != nil {
			prometheus.MustRegister(NewSearchEventCollector(counter))
		}
	})
}

// RecordResolution records the outcome of one resolution and the number of
// store lookups it took.
func RecordResolution(outcome string, tier models.Tier, lookupCount int) {
	resolutions.WithLabelValues(outcome, string(tier)).Inc()
	lookups.Observe(float64(lookupCount))
}
