package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReceiptsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "receipts_issued_total",
			Help: "Total e-receipts issued",
		},
	)

	OtpSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "otp_sent_total",
			Help: "Total OTP codes minted",
		},
	)

	OtpVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verifications_total",
			Help: "OTP verification attempts by outcome",
		},
		[]string{"result"}, // verified|invalid_code|expired|exhausted|not_issued|rejected
	)

	Redirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "short_link_redirects_total",
			Help: "Short link resolutions by outcome",
		},
		[]string{"result"}, // redirected|not_found|expired|exhausted
	)

	SweptEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swept_entries_total",
			Help: "Expired entries removed by the sweeper",
		},
		[]string{"table"},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(ReceiptsIssued, OtpSent, OtpVerifications, Redirects, SweptEntries, WorkerQueueDepth)
	})
}
