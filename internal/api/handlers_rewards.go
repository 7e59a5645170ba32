// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/milkbar/internal/loyalty"
	"github.com/tomtom215/milkbar/internal/metrics"
	"github.com/tomtom215/milkbar/internal/models"
)

// Rewards returns the reward catalog.
func (h *Handler) Rewards(w http.ResponseWriter, r *http.Request) {
	respondOK(w, body{"rewards": loyalty.Catalog()})
}

// Redeem exchanges points for a reward and returns the generated code.
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "Brak email.", nil)
		return
	}
	if strings.TrimSpace(req.RewardID) == "" {
		respondError(w, http.StatusBadRequest, "Brak rewardId.", nil)
		return
	}

	res, err := h.loyalty.Redeem(r.Context(), req.Email, req.MilkID, req.RewardID)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrUnknownReward):
			respondError(w, http.StatusBadRequest, "Nieznana nagroda.", nil)
		case errors.Is(err, loyalty.ErrInsufficientPoints):
			respondError(w, http.StatusBadRequest, "Za mało punktów.", nil)
		case errors.Is(err, loyalty.ErrCodeExhausted):
			respondError(w, http.StatusInternalServerError, "Nie udało się wygenerować kodu.", err)
		default:
			respondError(w, http.StatusInternalServerError, "Błąd realizacji nagrody", err)
		}
		return
	}

	metrics.RecordRedemption(res.Reward.ID, res.Reward.Cost)

	respondOK(w, body{
		"code":    res.Code.Code,
		"codeDoc": res.Code,
		"reward": body{
			"id":    res.Reward.ID,
			"title": res.Reward.Title,
			"cost":  res.Reward.Cost,
		},
		"points":  res.Points.Points,
		"history": res.Points.History,
	})
}

// CodeCheck reports a code's state without consuming it.
func (h *Handler) CodeCheck(w http.ResponseWriter, r *http.Request) {
	var req codeCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		respondError(w, http.StatusBadRequest, "Podaj kod.", nil)
		return
	}

	doc, err := h.loyalty.CheckCode(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, loyalty.ErrCodeNotFound) {
			respondError(w, http.StatusNotFound, "Nie znaleziono kodu.", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Błąd sprawdzania kodu", err)
		return
	}

	respondOK(w, body{
		"code":     doc.Code,
		"status":   doc.Status,
		"title":    doc.Title,
		"rewardId": doc.RewardID,
		"cost":     doc.Cost,
		"email":    doc.Email,
		"milkId":   doc.MilkID,
		"issuedAt": doc.IssuedAt,
		"usedAt":   doc.UsedAt,
		"usedBy":   doc.UsedBy,
	})
}

// useCode burns a code and writes the response. The admin panel and
// the older counter flow share the logic but differ in response shape.
func (h *Handler) useCode(w http.ResponseWriter, r *http.Request, code, usedBy string, adminShape bool) {
	if strings.TrimSpace(code) == "" {
		respondError(w, http.StatusBadRequest, "Podaj kod.", nil)
		return
	}

	doc, err := h.loyalty.UseCode(r.Context(), code, usedBy)
	if err != nil {
		switch {
		case errors.Is(err, loyalty.ErrCodeNotFound):
			respondError(w, http.StatusNotFound, "Nie znaleziono kodu.", nil)
		case errors.Is(err, loyalty.ErrCodeUsed):
			metrics.RecordCodeUse(true)
			respondJSON(w, http.StatusConflict, body{
				"ok":      false,
				"message": "Kod został już wykorzystany.",
				"code":    doc.Code,
				"name":    doc.Title,
				"used":    true,
				"usedAt":  doc.UsedAt,
				"note":    doc.UsedBy,
			})
		default:
			respondError(w, http.StatusInternalServerError, "Błąd wykorzystania kodu", err)
		}
		return
	}

	metrics.RecordCodeUse(false)

	if adminShape {
		respondOK(w, body{
			"code":   doc.Code,
			"name":   doc.Title,
			"used":   doc.Status == models.CodeStatusUsed,
			"usedAt": doc.UsedAt,
			"note":   doc.UsedBy,
		})
		return
	}

	respondOK(w, body{
		"code":    doc.Code,
		"name":    doc.Title,
		"used":    doc.Status == models.CodeStatusUsed,
		"usedAt":  doc.UsedAt,
		"note":    doc.UsedBy,
		"email":   doc.Email,
		"milkId":  doc.MilkID,
		"message": "Kod wykorzystany i zablokowany ✅",
		"title":   doc.Title,
		"usedBy":  doc.UsedBy,
	})
}

// CodeUse burns a code at the counter.
func (h *Handler) CodeUse(w http.ResponseWriter, r *http.Request) {
	var req codeUseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	h.useCode(w, r, req.Code, req.UsedBy, false)
}

// AdminRewardUse burns a code from the admin panel; the note field is
// stored in the used-by slot.
func (h *Handler) AdminRewardUse(w http.ResponseWriter, r *http.Request) {
	var req codeUseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Błędne dane.", err)
		return
	}

	h.useCode(w, r, req.Code, req.Note, true)
}
