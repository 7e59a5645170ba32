// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments:
  - HTTP request latency and throughput
  - BadgerDB operation performance
  - Loyalty activity: registrations, logins, credits, redemptions and
    code usage (including reuse conflicts)
  - Reservation volume by source
  - WebSocket connection counts

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3000/metrics

All collectors are registered with the default registry via promauto at
package load; handlers record through the helper functions rather than
touching collectors directly.
*/
package metrics
