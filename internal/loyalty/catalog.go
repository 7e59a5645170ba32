// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package loyalty

import "math"

// Reward is a catalog entry a customer can exchange points for.
type Reward struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cost  int    `json:"cost"`
	Desc  string `json:"desc"`
}

// catalog is the fixed server-side reward list. Clients may render their
// own copy, but cost and title always come from here at redemption time.
var catalog = []Reward{
	{ID: "milkshake_30", Title: "Milkshake do 30 PLN", Cost: 25, Desc: "Wartość do 30 PLN"},
	{ID: "burger_set_60", Title: "Zestaw burger do 60 PLN", Cost: 50, Desc: "Wartość do 60 PLN"},
	{ID: "order_120", Title: "Zamówienie do 120 PLN", Cost: 100, Desc: "Wartość do 120 PLN"},
}

// Catalog returns a copy of the reward catalog.
func Catalog() []Reward {
	out := make([]Reward, len(catalog))
	copy(out, catalog)
	return out
}

// FindReward looks a reward up by ID.
func FindReward(id string) (Reward, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// PointsForAmount converts a purchase amount in PLN to points: every
// full 10 PLN earns one point, fractions are dropped. Non-positive and
// non-finite amounts earn nothing.
func PointsForAmount(amountPLN float64) int {
	if math.IsNaN(amountPLN) || math.IsInf(amountPLN, 0) || amountPLN <= 0 {
		return 0
	}
	return int(math.Floor(amountPLN / 10))
}
