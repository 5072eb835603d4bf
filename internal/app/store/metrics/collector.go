package metricsstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

var catalogDocs = prometheus.NewDesc(
	"moviehub_catalog_documents",
	"Documents per catalog collection.",
	[]string{"collection"}, nil,
)

// Collector exports Counts as a gauge per collection, read at scrape time.
type Collector struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewCollector(db *mongo.Database, timeout time.Duration) *Collector {
	return &Collector{db: db, timeout: timeout}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- catalogDocs
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts := FetchCounts(ctx, c.db)
	for coll, n := range map[string]int64{
		"members":       counts.Members,
		"movies":        counts.Movies,
		"subscriptions": counts.Subscriptions,
		"users":         counts.Users,
	} {
		ch <- prometheus.MustNewConstMetric(catalogDocs, prometheus.GaugeValue, float64(n), coll)
	}
}
