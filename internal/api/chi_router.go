// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/milkbar/internal/middleware"
)

// Router wires handlers, middleware and the static frontend into one
// chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	static        *staticHandler
}

// NewRouter creates a Router around the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(handler.config),
		static:        newStaticHandler(),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	mw := router.chiMiddleware
	h := router.handler

	// Global stack. CORS must be global to catch OPTIONS preflight.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	// Health probes. Permissive limit so monitoring can poll freely.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/api/health", h.Health)
		r.Get("/api/health/live", h.HealthLive)
		r.Get("/api/health/ready", h.HealthReady)
	})

	// PIN gates and account auth. Strict limits against brute force.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(RateLimitAuth))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/api/login", h.AdminLogin)
		r.Post("/api/clients/unlock", h.ClientsUnlock)
		r.Post("/api/auth/register", h.Register)

		r.With(mw.RateLimit(RateLimitLogin)).Post("/api/auth/login", h.Login)
	})

	// Loyalty and reservation reads.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(RateLimitAPI))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/api/milkid/{milkId}", h.MilkIDLookup)
		r.Get("/api/milkpoints/my", h.MyPoints)
		r.Get("/api/rewards", h.Rewards)
		r.Get("/api/rezerwacje", h.ReservationsList)
		r.Get("/api/rezerwacje/my", h.ReservationsMine)
		r.Get("/api/data", h.Data)
		r.Get("/api/happy", h.HappyGet)
	})

	// Writes from customer-facing clients.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(RateLimitWrite))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/api/rewards/redeem", h.Redeem)
		r.Post("/api/codeid/check", h.CodeCheck)
		r.Post("/api/codeid/use", h.CodeUse)
		r.Post("/api/rezerwacje", h.ReservationCreate)
		r.Put("/api/rezerwacje/{id}", h.ReservationUpdate)
		r.Delete("/api/rezerwacje/{id}", h.ReservationDelete)
		r.Post("/api/happy", h.HappySet)
	})

	// Staff operations behind the admin PIN.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(RateLimitWrite))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(mw.AdminPINGuard())

		r.Post("/api/admin/milkpoints/add-by-milkid", h.AdminCredit)
		r.Post("/api/admin/rewards/use", h.AdminRewardUse)
		r.Get("/api/admin/stats", h.AdminStats)
		r.Get("/api/admin/happy/log", h.AdminHappyLog)
	})

	// Operational endpoints.
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", h.WebSocket)

	// Unknown API paths get a JSON 404, everything else falls through
	// to the SPA.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api/") {
			respondJSON(w, http.StatusNotFound, body{"ok": false, "message": "Not found"})
			return
		}
		router.static.ServeHTTP(w, req)
	})

	return r
}
