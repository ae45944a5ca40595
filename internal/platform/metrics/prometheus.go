package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsManager holds the custom Prometheus metrics for the service.
type MetricsManager struct {
	Registry            *prometheus.Registry
	AssetUploadsTotal   prometheus.Counter
	AssetUploadFailures prometheus.Counter
	AssetDeletesTotal   prometheus.Counter
	OrphanedAssetsTotal prometheus.Counter
	ListingsCreated     prometheus.Counter
	ListingsDeleted     prometheus.Counter
}

// NewMetricsManager initializes and registers the custom metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	assetUploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "asset_uploads_total",
		Help:      "Total number of remote asset uploads attempted.",
	})
	assetUploadFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "asset_upload_failures_total",
		Help:      "Total number of remote asset uploads that failed.",
	})
	assetDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "asset_deletes_total",
		Help:      "Total number of remote asset deletions dispatched.",
	})
	orphanedAssetsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "orphaned_assets_total",
		Help:      "Remote assets whose deletion failed after the local reference was removed.",
	})
	listingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	listingsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_deleted_total",
		Help:      "Total number of listings deleted.",
	})

	registry.MustRegister(
		assetUploadsTotal,
		assetUploadFailures,
		assetDeletesTotal,
		orphanedAssetsTotal,
		listingsCreated,
		listingsDeleted,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:            registry,
		AssetUploadsTotal:   assetUploadsTotal,
		AssetUploadFailures: assetUploadFailures,
		AssetDeletesTotal:   assetDeletesTotal,
		OrphanedAssetsTotal: orphanedAssetsTotal,
		ListingsCreated:     listingsCreated,
		ListingsDeleted:     listingsDeleted,
	}
}
