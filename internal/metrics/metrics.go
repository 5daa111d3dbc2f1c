package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pressclip",
			Name:      "pages_classified_total",
			Help:      "Pages classified, labeled by label and source of the label",
		},
		[]string{"label", "source"},
	)

	pagesSelected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pressclip",
			Name:      "pages_selected_total",
			Help:      "Pages included in the consolidated output",
		},
	)

	providerReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pressclip",
			Name:      "provider_requests_total",
			Help:      "Remote classification requests by provider, model and result",
		},
		[]string{"provider", "model", "result"},
	)

	providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pressclip",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of remote classification requests by provider and model",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)

	breakerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pressclip",
			Name:      "breaker_events_total",
			Help:      "Provider breaker events by provider and action",
		},
		[]string{"provider", "action"},
	)
)

var registerOnce sync.Once

// Init registers collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(pagesClassified, pagesSelected, providerReqs, providerLatency, breakerEvents)
	})
}

// Handler returns the http.Handler for /metrics.
func Handler() http.Handler { return promhttp.Handler() }

func IncClassified(label, source string) { pagesClassified.WithLabelValues(label, source).Inc() }
func IncSelected()                       { pagesSelected.Inc() }

func ObserveProvider(provider, model, result string, dur time.Duration) {
	providerReqs.WithLabelValues(provider, model, result).Inc()
	providerLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}

func BreakerOpened(provider string) { breakerEvents.WithLabelValues(provider, "opened").Inc() }
func BreakerClosed(provider string) { breakerEvents.WithLabelValues(provider, "closed").Inc() }
