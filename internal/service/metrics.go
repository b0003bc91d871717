package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Record outcomes.
const (
	outcomeConverted = "converted"
	outcomeRetried   = "retried"
	outcomeExcluded  = "excluded"
)

var (
	migrationRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_migration_records_total",
			Help: "Source records processed by catalog migrations, by outcome",
		},
		[]string{"outcome"},
	)

	migrationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_migration_runs_total",
			Help: "Catalog migration passes, by status",
		},
		[]string{"status"},
	)

	migrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_migration_duration_seconds",
			Help:    "Wall time of a catalog migration pass",
			Buckets: prometheus.DefBuckets,
		},
	)
)
