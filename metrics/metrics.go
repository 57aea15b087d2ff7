// Package metrics provides Prometheus metrics for the bot.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// CommandsTotal counts slash command invocations.
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bastion_commands_total",
			Help: "Total number of slash command invocations",
		},
		[]string{"command", "outcome"},
	)

	// CommandLatency observes interaction-to-reply latency.
	CommandLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bastion_command_latency_seconds",
			Help:    "Time from interaction creation to reply",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
		},
		[]string{"command"},
	)

	// UpstreamRequestsTotal counts outbound API requests by host and status.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bastion_upstream_requests_total",
			Help: "Total outbound requests to data services",
		},
		[]string{"host", "status"},
	)

	// UpstreamRequestDuration observes outbound request latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bastion_upstream_request_duration_seconds",
			Help:    "Outbound request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	// ClockOffsetSeconds is the last NTP offset applied to the wall clock.
	ClockOffsetSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bastion_clock_offset_seconds",
			Help: "Wall clock correction from the last NTP sync",
		},
	)
)

// ObserveCommand records one finished command.
func ObserveCommand(command, outcome string, latencyMS int64) {
	CommandsTotal.WithLabelValues(command, outcome).Inc()
	CommandLatency.WithLabelValues(command).Observe(float64(latencyMS) / 1000)
}
