// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package middleware provides HTTP middleware shared across the router.

Key components:

  - RequestID: UUID-based request tracking, wired into the logging
    package for correlated log lines
  - PrometheusMetrics: request/response instrumentation with chi route
    patterns as endpoint labels

Cross-cutting concerns that chi or its contrib modules already cover
(CORS, rate limiting, panic recovery, timeouts) are mounted directly in
the router from their upstream packages rather than re-wrapped here.
*/
package middleware
