// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package loyalty implements the points ledger and the reward program:
// converting purchase amounts to points, the fixed reward catalog, and
// single-use redemption codes.
//
// Points are earned at a flat rate of one point per full 10 PLN spent.
// Redeeming a reward debits the balance and issues a unique code in a
// single transaction; the code can be checked any number of times but
// burned exactly once.
package loyalty
