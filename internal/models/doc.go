// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package models defines the persistent document types shared across
// Milkbar: user accounts, loyalty points, Milk ID mappings, reward codes,
// reservations and the announcement bar.
//
// Documents are stored as JSON in Badger and serialized to clients with
// the same field names, so json tags here are the wire contract.
package models
