// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/metrics"
)

// pinMatches compares PINs in constant time.
func pinMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// AdminLogin verifies the admin panel PIN.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if h.config.Auth.AdminPIN == "" {
		respondError(w, http.StatusInternalServerError, "Brak ADMIN_PIN w zmiennych środowiskowych.", nil)
		return
	}

	if !pinMatches(req.Pin, h.config.Auth.AdminPIN) {
		respondError(w, http.StatusUnauthorized, "Błędny PIN", nil)
		return
	}

	respondOK(w, nil)
}

// ClientsUnlock verifies the staff PIN that unlocks the clients view.
func (h *Handler) ClientsUnlock(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if h.config.Auth.ClientsPIN == "" {
		respondError(w, http.StatusInternalServerError, "Brak CLIENTS_PIN w zmiennych środowiskowych.", nil)
		return
	}

	if !pinMatches(req.Pin, h.config.Auth.ClientsPIN) {
		respondError(w, http.StatusUnauthorized, "Błędny PIN", nil)
		return
	}

	respondOK(w, nil)
}

// Register creates an account and returns the assigned milk ID.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	user, err := h.identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "Podaj poprawny email.", nil)
		case errors.Is(err, identity.ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, "Hasło min. 6 znaków.", nil)
		case errors.Is(err, identity.ErrEmailTaken):
			respondError(w, http.StatusConflict, "Konto z tym emailem już istnieje.", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Błąd rejestracji", err)
		}
		return
	}

	metrics.RegistrationsTotal.Inc()

	respondOK(w, body{
		"user":   body{"email": user.Email, "milkId": user.MilkID},
		"milkId": user.MilkID,
	})
}

// Login verifies credentials and returns the account with its points.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Podaj hasło.", nil)
		return
	}

	user, points, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "Podaj poprawny email.", nil)
		case errors.Is(err, identity.ErrInvalidCredentials):
			metrics.RecordLogin(false)
			respondError(w, http.StatusUnauthorized, "Błędny email lub hasło.", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Błąd logowania", err)
		}
		return
	}

	metrics.RecordLogin(true)

	respondOK(w, body{
		"user":    body{"email": user.Email, "milkId": user.MilkID},
		"milkId":  user.MilkID,
		"points":  points.Points,
		"history": points.History,
	})
}

// MilkIDLookup resolves a milk ID to the email it belongs to.
func (h *Handler) MilkIDLookup(w http.ResponseWriter, r *http.Request) {
	milkID := chi.URLParam(r, "milkId")

	mapping, err := h.identity.LookupMilkID(r.Context(), milkID)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMilkIDNotFound):
			respondError(w, http.StatusNotFound, "Nie znaleziono Milk ID", nil)
		case errors.Is(err, identity.ErrInvalidMilkID):
			respondError(w, http.StatusBadRequest, "Zły Milk ID", nil)
		default:
			respondError(w, http.StatusInternalServerError, "Błąd lookup", err)
		}
		return
	}

	respondOK(w, body{"milkId": mapping.MilkID, "email": mapping.Email})
}
