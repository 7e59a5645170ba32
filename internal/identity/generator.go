// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// MilkIDLength is the number of digits in a Milk ID.
const MilkIDLength = 6

// milkIDAttempts bounds the uniqueness retry loop. With 900k possible
// IDs the loop only matters near saturation, where failing loudly beats
// spinning forever.
const milkIDAttempts = 80

// ErrMilkIDExhausted is returned when no unique Milk ID could be
// allocated within the attempt budget.
var ErrMilkIDExhausted = errors.New("could not allocate a unique milk ID")

// milkIDSpan is the count of valid IDs: 100000..999999.
var milkIDSpan = big.NewInt(900000)

// generateUniqueMilkID draws random 6-digit IDs until one is free.
func (s *Service) generateUniqueMilkID() (string, error) {
	for i := 0; i < milkIDAttempts; i++ {
		n, err := rand.Int(rand.Reader, milkIDSpan)
		if err != nil {
			return "", fmt.Errorf("draw milk ID: %w", err)
		}
		candidate := fmt.Sprintf("%06d", n.Int64()+100000)

		exists, err := s.store.MilkIDExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", ErrMilkIDExhausted
}
