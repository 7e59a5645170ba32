// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package models

import "time"

// Reservation sources.
const (
	// SourceApp marks reservations made from the loyalty app (milk ID known).
	SourceApp = "app"
	// SourceIndex marks reservations made from the public landing page.
	SourceIndex = "index"
)

// Reservation is a table booking. Guests stays a string because the
// clients send it free-form ("2", "5+", "impreza").
type Reservation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`

	Guests string `json:"guests"`
	Room   string `json:"room"`
	Notes  string `json:"notes"`

	Email  string `json:"email"`
	MilkID string `json:"milkId"`
	Source string `json:"source"`

	CreatedAt time.Time `json:"createdAt"`
}
