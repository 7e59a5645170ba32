// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/milkbar/internal/metrics"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/reservations"
)

// ReservationsList returns all reservations as a bare array. The admin
// board sorts client-side, so no server ordering beyond date/time.
func (h *Handler) ReservationsList(w http.ResponseWriter, r *http.Request) {
	list, err := h.reservations.List(r.Context())
	if err != nil {
		// The boards expect an array even on failure.
		respondJSON(w, http.StatusInternalServerError, []models.Reservation{})
		return
	}
	if list == nil {
		list = []models.Reservation{}
	}
	respondJSON(w, http.StatusOK, list)
}

// ReservationsMine returns the caller's reservations as a bare array.
func (h *Handler) ReservationsMine(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	list, err := h.reservations.ListMine(r.Context(), email)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, []models.Reservation{})
		return
	}
	if list == nil {
		list = []models.Reservation{}
	}
	respondJSON(w, http.StatusOK, list)
}

// ReservationCreate stores a new reservation and broadcasts it.
func (h *Handler) ReservationCreate(w http.ResponseWriter, r *http.Request) {
	var req reservationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	in := reservations.Input{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Date:   strings.TrimSpace(req.Date),
		Time:   strings.TrimSpace(req.Time),
		Guests: strings.TrimSpace(string(req.Guests)),
		Room:   strings.TrimSpace(req.Room),
		Notes:  req.Notes,
		Email:  req.Email,
		MilkID: req.MilkID,
		Source: req.Source,
	}

	if in.Name == "" || in.Phone == "" || in.Date == "" || in.Time == "" || in.Guests == "" || in.Room == "" {
		respondError(w, http.StatusBadRequest, "Uzupełnij wszystkie wymagane pola.", nil)
		return
	}

	res, err := h.reservations.Create(r.Context(), in)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd zapisu rezerwacji", err)
		return
	}

	metrics.ReservationsCreated.WithLabelValues(res.Source).Inc()

	respondOK(w, body{"reservation": res})
}

// ReservationUpdate edits fields of an existing reservation.
func (h *Handler) ReservationUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reservationUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	upd := reservations.Update{
		Name:   req.Name,
		Phone:  req.Phone,
		Date:   req.Date,
		Time:   req.Time,
		Room:   req.Room,
		Notes:  req.Notes,
	}
	if req.Guests != nil {
		g := string(*req.Guests)
		upd.Guests = &g
	}

	res, err := h.reservations.Edit(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, reservations.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Nie znaleziono rezerwacji", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Błąd edycji rezerwacji", err)
		return
	}

	respondOK(w, body{"reservation": res})
}

// ReservationDelete removes a reservation. Deleting an unknown ID is
// not an error.
func (h *Handler) ReservationDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reservations.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "Błąd usuwania rezerwacji", err)
		return
	}

	respondOK(w, nil)
}
