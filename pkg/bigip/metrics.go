package bigip

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigip_icontrol_request_duration_seconds",
			Help:    "Duration of BIG-IP iControl REST calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource", "code"},
	)

	loginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bigip_icontrol_logins_total",
			Help: "Total number of BIG-IP session token logins",
		},
	)
)

func observeRequest(method, path, code string, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, metricResource(path), code).Observe(elapsed.Seconds())
}

// metricResource drops the object segment so label cardinality stays bounded:
// /tm/ltm/pool/~Common~web becomes /tm/ltm/pool.
func metricResource(path string) string {
	if i := strings.Index(path, "/~"); i >= 0 {
		return path[:i]
	}
	return path
}
