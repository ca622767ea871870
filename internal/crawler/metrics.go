package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pagesCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sih_crawler_pages_crawled_total",
		Help: "HTML pages fetched, parsed and recorded in the page log.",
	})
	pagesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sih_crawler_pages_failed_total",
		Help: "Requests that ended in a transport or HTTP error.",
	})
	artifactsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sih_crawler_artifacts_saved_total",
		Help: "Documents persisted to the data directory, by category.",
	}, []string{"category"})
	duplicatesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sih_crawler_duplicates_skipped_total",
		Help: "Responses dropped because their canonical URL was already processed.",
	})
)
