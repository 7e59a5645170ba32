// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package validation provides struct validation using
// go-playground/validator v10. It exposes a thread-safe singleton
// validator instance (initialized once, struct metadata cached) and
// translates field errors to human-readable messages for API error
// responses.
//
// Example usage:
//
//	type CreditRequest struct {
//	    MilkID    string  `json:"milkId" validate:"required,len=6,numeric"`
//	    AmountPLN float64 `json:"amountPln" validate:"required,gt=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Message())
//	    return
//	}
package validation
