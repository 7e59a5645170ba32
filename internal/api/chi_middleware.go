// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/metrics"
)

// RateLimitConfig defines rate limit parameters for a route group.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Per-group rate limits. Auth endpoints are strict to slow brute force,
// health stays permissive for monitoring probes.
var (
	// RateLimitAuth covers PIN unlock and registration.
	RateLimitAuth = RateLimitConfig{Requests: 5, Window: time.Minute}

	// RateLimitLogin is the strictest tier; failed logins are cheap to
	// retry and worth attacking.
	RateLimitLogin = RateLimitConfig{Requests: 5, Window: 5 * time.Minute}

	// RateLimitWrite covers reservation and points mutations.
	RateLimitWrite = RateLimitConfig{Requests: 30, Window: time.Minute}

	// RateLimitHealth allows frequent checks from monitoring tools.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

	// RateLimitAPI is the default for everything else.
	RateLimitAPI = RateLimitConfig{Requests: 100, Window: time.Minute}
)

// ChiMiddleware builds the middleware stack from the runtime config.
type ChiMiddleware struct {
	cfg  *config.Config
	cors func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. CORS origins come
// from security.cors_origins; the bar's kiosk tablets and the public
// site are separate origins in production.
func NewChiMiddleware(cfg *config.Config) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Pin", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		cfg:  cfg,
		cors: corsHandler,
	}
}

// CORS returns the go-chi/cors handler built from config.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns an IP-keyed limiter for the given tier, or a no-op
// when rate limiting is disabled.
func (m *ChiMiddleware) RateLimit(rl RateLimitConfig) func(http.Handler) http.Handler {
	if m.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		rl.Requests,
		rl.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, http.StatusTooManyRequests, "Zbyt wiele żądań. Spróbuj za chwilę.", nil)
		}),
	)
}

// AdminPINGuard protects /api/admin routes. Staff clients send the PIN
// in the X-Admin-Pin header on every request; there is no session.
func (m *ChiMiddleware) AdminPINGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.cfg.Auth.AdminPIN == "" {
				respondError(w, http.StatusInternalServerError, "Brak ADMIN_PIN w zmiennych środowiskowych.", nil)
				return
			}
			if !pinMatches(r.Header.Get("X-Admin-Pin"), m.cfg.Auth.AdminPIN) {
				respondError(w, http.StatusUnauthorized, "Błędny PIN", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// APISecurityHeaders adds baseline security headers to API responses.
//
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Referrer-Policy: strict-origin-when-cross-origin
//
// HSTS is added only over HTTPS or behind a TLS-terminating proxy
// (X-Forwarded-Proto).
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
