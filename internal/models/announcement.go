// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package models

import "time"

// Announcement is the "happy bar" banner text shown on all clients.
// A single current record is upserted in place; every change is also
// appended to an audit log in the store.
type Announcement struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}
