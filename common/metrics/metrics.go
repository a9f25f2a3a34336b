package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CertificatesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificates_generated_total",
		Help: "Number of certificate PDFs rendered.",
	})

	CertificatesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificates_sent_total",
		Help: "Number of certificate emails delivered.",
	})

	CertificatesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificates_failed_total",
		Help: "Number of certificate deliveries that failed.",
	})

	CertificatesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificates_skipped_total",
		Help: "Number of attendees skipped because their certificate was already sent.",
	})

	SchedulerRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificate_scheduler_runs_total",
		Help: "Number of scheduler firings.",
	})
)
