package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "reporthub"
)

var (
	ReportVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "report", "verify_duration_seconds"),
		Help:    "Duration of report verification in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"verifier"})
	ReportIngestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "report", "ingest_duration_seconds"),
		Help:    "Duration of report ingestion in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	ReportOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "report", "outcome"),
		Help: "Outcome distribution of report submissions",
	}, []string{"outcome"})
	NotifyDeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "notify", "delivery_duration_seconds"),
		Help:    "Duration of webhook notification deliveries in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	NotifyDeliveryOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "notify", "delivery_outcome"),
		Help: "Outcome distribution of webhook notification deliveries",
	}, []string{"outcome"})
	WorkerRefreshDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "refresh_duration_seconds"),
		Help: "Duration of last worker refresh in seconds",
	}, []string{"job"})
	StoreReports = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "store", "reports"),
		Help: "Number of reports currently held by the store",
	})
)

const (
	OutcomeAccepted      = "accepted"
	OutcomeRejected      = "rejected"
	OutcomePersistFailed = "persist_failed"
	OutcomeIDExhausted   = "id_exhausted"

	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)
