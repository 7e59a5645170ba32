// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"net/http"
	"time"
)

// Health reports process and database state for monitoring.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := h.store.Ping(); err != nil {
		dbStatus = "error"
	}

	respondOK(w, body{
		"db":        dbStatus,
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
		"wsClients": h.wsHub.GetClientCount(),
		"time":      time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthLive answers liveness probes; reachable means alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondOK(w, body{"status": "alive"})
}

// HealthReady answers readiness probes. Not ready until the database
// responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, body{"ok": false, "status": "not ready"})
		return
	}
	respondOK(w, body{"status": "ready"})
}

// AdminStats aggregates counters for the admin dashboard.
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.CountUsers()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}
	reservations, err := h.store.CountReservations()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}
	codesIssued, err := h.store.CountCodes()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}
	codesUsed, err := h.store.CountUsedCodes()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}
	milkIDs, err := h.store.CountMilkIDs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}
	total, holders, err := h.store.PointsTotals()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd statystyk", err)
		return
	}

	respondOK(w, body{
		"users":           users,
		"reservations":    reservations,
		"codesIssued":     codesIssued,
		"codesUsed":       codesUsed,
		"milkIds":         milkIDs,
		"milkosTotal":     total,
		"usersWithPoints": holders,
	})
}
