package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/hoard-go/pkg/cmap"
)

// StoreSource is the read side of the data store needed for metrics.
type StoreSource interface {
	Stats() []cmap.ShardStats
}

// StoreCollector reports store size at scrape time.
type StoreCollector struct {
	src StoreSource

	entries      *prometheus.Desc
	shardEntries *prometheus.Desc
}

// NewStoreCollector creates a collector for src.
func NewStoreCollector(src StoreSource) *StoreCollector {
	return &StoreCollector{
		src: src,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "entries"),
			"Number of entries in the store.",
			nil, nil,
		),
		shardEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "shard_entries"),
			"Number of entries per store shard.",
			[]string{"shard"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.shardEntries
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	total := 0
	for _, s := range stats {
		total += s.Count
		ch <- prometheus.MustNewConstMetric(c.shardEntries, prometheus.GaugeValue,
			float64(s.Count), strconv.Itoa(s.Index))
	}
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(total))
}
