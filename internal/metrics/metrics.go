// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - BadgerDB operation performance
// - Loyalty program activity (credits, redemptions, code usage)
// - Reservation volume
// - WebSocket connections

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Store Metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of BadgerDB operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of BadgerDB operation errors",
		},
		[]string{"operation"},
	)

	// Loyalty Metrics
	PointsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_credited_total",
			Help: "Total number of points credited to accounts",
		},
	)

	PointsRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_points_redeemed_total",
			Help: "Total number of points debited for rewards",
		},
	)

	RewardsRedeemed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyalty_rewards_redeemed_total",
			Help: "Total number of rewards redeemed",
		},
		[]string{"reward_id"},
	)

	CodesUsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_codes_used_total",
			Help: "Total number of redemption codes burned at the counter",
		},
	)

	CodeUseConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyalty_code_use_conflicts_total",
			Help: "Total number of attempts to reuse an already-used code",
		},
	)

	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "Total number of accounts registered",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Reservation Metrics
	ReservationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of reservations created",
		},
		[]string{"source"}, // "app", "index"
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket frames delivered",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStoreOp records a BadgerDB operation metric
func RecordStoreOp(operation string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(operation).Inc()
	}
}

// RecordCredit records points credited by a cashier
func RecordCredit(points int) {
	PointsCredited.Add(float64(points))
}

// RecordRedemption records a reward redemption
func RecordRedemption(rewardID string, cost int) {
	PointsRedeemed.Add(float64(cost))
	RewardsRedeemed.WithLabelValues(rewardID).Inc()
}

// RecordCodeUse records the outcome of a code-burn attempt
func RecordCodeUse(conflict bool) {
	if conflict {
		CodeUseConflicts.Inc()
		return
	}
	CodesUsed.Inc()
}

// RecordLogin records a login attempt
func RecordLogin(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	LoginsTotal.WithLabelValues(result).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
