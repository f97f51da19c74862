package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	CreditsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_credits_applied_total",
			Help: "Ledger transactions committed, by context",
		},
		[]string{"context"},
	)
	CreditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_credit_failures_total",
			Help: "Ledger transactions that failed to commit",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(CreditsApplied)
	prometheus.MustRegister(CreditFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
