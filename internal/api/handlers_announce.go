// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"net/http"
)

// Data returns the announcement bar under every name clients have used
// for it over the years.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	a, err := h.announce.Current(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd pobierania danych", err)
		return
	}

	var updatedAt any
	if !a.UpdatedAt.IsZero() {
		updatedAt = a.UpdatedAt
	}

	respondOK(w, body{
		"happy":        a.Text,
		"happyBarText": a.Text,
		"text":         a.Text,
		"updatedAt":    updatedAt,
	})
}

// HappyGet returns the current announcement text.
func (h *Handler) HappyGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.announce.Current(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd pobierania paska", err)
		return
	}
	respondOK(w, body{"happy": a.Text})
}

// AdminHappyLog returns past banner texts for the admin panel.
func (h *Handler) AdminHappyLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.announce.Log(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd pobierania historii paska", err)
		return
	}
	respondOK(w, body{"log": log})
}

// HappySet stores the announcement text and broadcasts it.
func (h *Handler) HappySet(w http.ResponseWriter, r *http.Request) {
	var req happyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	a, err := h.announce.Set(r.Context(), req.Value())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd zapisu paska", err)
		return
	}

	respondOK(w, body{"happy": a.Text})
}
