package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "stokergw_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	pollTotal    *prometheus.CounterVec
	pollDuration *prometheus.HistogramVec
	loginTotal   *prometheus.CounterVec

	eventsPublished prometheus.Gauge
)

// Init registers the gateway metrics with the default registry. Safe to call
// more than once; observation helpers are no-ops until Init runs.
func Init() {
	registerOnce.Do(func() {
		pollTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "poll_total",
				Help: "Completed poll cycles by loop and result",
			},
			[]string{"loop", "result"},
		)
		pollDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "poll_duration_seconds",
				Help:    "Poll cycle duration by loop",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"loop"},
		)
		loginTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "login_total",
				Help: "Login attempts against the vendor API by result",
			},
			[]string{"result"},
		)
		eventsPublished = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "events_published",
				Help: "Event records in the most recently published batch",
			},
		)

		prometheus.MustRegister(pollTotal, pollDuration, loginTotal, eventsPublished)
	})
}

// ObservePoll records one completed poll cycle.
func ObservePoll(loop string, elapsed time.Duration, err error) {
	if pollTotal == nil {
		return
	}
	pollTotal.WithLabelValues(loop, resultLabel(err)).Inc()
	pollDuration.WithLabelValues(loop).Observe(elapsed.Seconds())
}

// ObserveLogin records one login attempt.
func ObserveLogin(err error) {
	if loginTotal == nil {
		return
	}
	loginTotal.WithLabelValues(resultLabel(err)).Inc()
}

// SetEventsPublished records the size of the latest published event batch.
func SetEventsPublished(n int) {
	if eventsPublished == nil {
		return
	}
	eventsPublished.Set(float64(n))
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
