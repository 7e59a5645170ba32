// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/milkbar/internal/loyalty"
	"github.com/tomtom215/milkbar/internal/metrics"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/validation"
)

// MyPoints returns the caller's points and history. An empty email is
// answered with an empty snapshot rather than an error so the app can
// render a logged-out state.
func (h *Handler) MyPoints(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondOK(w, body{"email": "", "points": 0, "history": []models.HistoryEntry{}})
		return
	}

	snap, err := h.loyalty.Snapshot(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd pobierania punktów", err)
		return
	}

	respondOK(w, body{
		"email":   snap.Email,
		"points":  snap.Points,
		"history": snap.History,
	})
}

// AdminCredit adds points for a purchase, looked up by milk ID.
func (h *Handler) AdminCredit(w http.ResponseWriter, r *http.Request) {
	var req creditRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, "Podaj poprawny Milk ID (6 cyfr).", verr)
		return
	}

	res, err := h.loyalty.Credit(r.Context(), req.MilkID, req.AmountPLN, req.Cashier)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrMilkIDNotFound):
			respondError(w, http.StatusNotFound, "Nie znaleziono użytkownika dla tego Milk ID.", nil)
		case errors.Is(err, loyalty.ErrAmountTooSmall):
			respondError(w, http.StatusBadRequest, "Kwota za mała (min 10 zł = 1 pkt).", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Błąd naliczania punktów", err)
		}
		return
	}

	metrics.RecordCredit(res.AddedPoints)

	respondOK(w, body{
		"email":       res.Email,
		"milkId":      res.MilkID,
		"addedPoints": res.AddedPoints,
		"points":      res.Points.Points,
		"history":     res.Points.History,
	})
}
