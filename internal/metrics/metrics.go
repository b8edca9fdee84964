package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors, registered via Register.
var (
	regOK atomic.Bool

	botStarts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phronesis",
			Subsystem: "bot",
			Name:      "starts_total",
			Help:      "Number of successful bot worker starts.",
		}, []string{"bot_type"},
	)
	botStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phronesis",
			Subsystem: "bot",
			Name:      "stops_total",
			Help:      "Number of bot worker stops, by termination path.",
		}, []string{"mode"},
	)
	activeBots = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "phronesis",
			Subsystem: "bot",
			Name:      "active",
			Help:      "Currently registered bot workers.",
		},
	)
	provisionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "phronesis",
			Subsystem: "daily",
			Name:      "provision_duration_seconds",
			Help:      "Time spent creating a room and minting its token.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "phronesis",
			Subsystem: "content",
			Name:      "generation_duration_seconds",
			Help:      "Time spent on generative API calls, by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"},
	)
)

// Register registers all collectors with r. Safe to call more than once;
// calls after the first success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{botStarts, botStops, activeBots, provisionDuration, generationDuration}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler { return promhttp.Handler() }

func BotStarted(botType string) { botStarts.WithLabelValues(botType).Inc() }

func BotStopped(forced bool) {
	mode := "graceful"
	if forced {
		mode = "forced"
	}
	botStops.WithLabelValues(mode).Inc()
}

func SetActiveBots(n int) { activeBots.Set(float64(n)) }

func ObserveProvision(d time.Duration) { provisionDuration.Observe(d.Seconds()) }

func ObserveGeneration(kind string, d time.Duration) {
	generationDuration.WithLabelValues(kind).Observe(d.Seconds())
}
