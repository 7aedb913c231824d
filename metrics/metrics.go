// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ecocondor",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecocondor",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	activitiesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "ledger",
			Name:      "activities_total",
			Help:      "Recycling activities appended to the ledger.",
		},
		[]string{"material"},
	)

	pointsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "ledger",
			Name:      "points_awarded_total",
			Help:      "Points earned by recorded activities.",
		},
	)

	uncreditedActivities = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "ledger",
			Name:      "uncredited_activities_total",
			Help:      "Activities recorded for a user without profile, so no balance was credited.",
		},
	)

	redemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "rewards",
			Name:      "redemptions_total",
			Help:      "Redemption attempts by outcome.",
		},
		[]string{"outcome"},
	)

	pointsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ecocondor",
			Subsystem: "rewards",
			Name:      "points_spent_total",
			Help:      "Points debited by successful redemptions.",
		},
	)
)

// Redemption outcomes
const (
	OutcomeRedeemed     = "redeemed"
	OutcomeInsufficient = "insufficient"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		activitiesRecorded,
		pointsAwarded,
		uncreditedActivities,
		redemptions,
		pointsSpent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
// Requests are labelled with the chi route pattern, not the raw path.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// ActivityRecorded counts a ledger append. material should be a bounded
// label; callers map unknown materials to "other".
func ActivityRecorded(material string, points int64, credited bool) {
	activitiesRecorded.WithLabelValues(material).Inc()
	pointsAwarded.Add(float64(points))
	if !credited {
		uncreditedActivities.Inc()
	}
}

// RedemptionAttempted counts a redemption by outcome; spent is only added
// for OutcomeRedeemed.
func RedemptionAttempted(outcome string, spent int64) {
	redemptions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeRedeemed {
		pointsSpent.Add(float64(spent))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
