// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/milkbar/internal/models"
)

// PutReservation inserts or replaces a reservation document.
func (s *Store) PutReservation(r *models.Reservation) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reservation: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(reservationKeyPrefix+r.ID), data)
	})
}

// GetReservation retrieves a reservation by ID.
func (s *Store) GetReservation(id string) (*models.Reservation, error) {
	var r models.Reservation

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(reservationKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get reservation: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// DeleteReservation removes a reservation. Deleting a missing ID is not
// an error, matching idempotent delete semantics at the API.
func (s *Store) DeleteReservation(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(reservationKeyPrefix + id))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete reservation: %w", err)
		}
		return nil
	})
}

// ListReservations returns all reservations, newest first. An optional
// email filter limits the result to one customer's bookings.
func (s *Store) ListReservations(emailFilter string) ([]models.Reservation, error) {
	list := []models.Reservation{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reservationKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r models.Reservation
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("unmarshal reservation: %w", err)
			}

			if emailFilter != "" && r.Email != emailFilter {
				continue
			}
			list = append(list, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list, nil
}

// CountReservations returns the number of stored reservations.
func (s *Store) CountReservations() (int, error) {
	return s.countPrefix(reservationKeyPrefix)
}
