// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/milkbar/internal/models"
)

// getPointsTxn loads the points document inside a transaction, returning
// a zeroed document when none exists yet.
func getPointsTxn(txn *badger.Txn, email string) (*models.Points, error) {
	points := &models.Points{
		Email:   email,
		History: []models.HistoryEntry{},
	}

	item, err := txn.Get([]byte(pointsKeyPrefix + email))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return points, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get points: %w", err)
	}

	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, points)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal points: %w", err)
	}
	if points.History == nil {
		points.History = []models.HistoryEntry{}
	}

	return points, nil
}

func setPointsTxn(txn *badger.Txn, points *models.Points) error {
	points.UpdatedAt = time.Now()

	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}
	return txn.Set([]byte(pointsKeyPrefix+points.Email), data)
}

// EnsurePoints returns the points document for an email, persisting an
// empty one if the account has none yet.
func (s *Store) EnsurePoints(email string) (*models.Points, error) {
	var points *models.Points

	err := s.db.Update(func(txn *badger.Txn) error {
		p, err := getPointsTxn(txn, email)
		if err != nil {
			return err
		}
		points = p

		if p.UpdatedAt.IsZero() {
			return setPointsTxn(txn, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return points, nil
}

// CreditPoints adds points and prepends a history entry atomically.
// Returns the updated document.
func (s *Store) CreditPoints(email string, points int, entry models.HistoryEntry) (*models.Points, error) {
	var updated *models.Points

	err := s.db.Update(func(txn *badger.Txn) error {
		p, err := getPointsTxn(txn, email)
		if err != nil {
			return err
		}

		p.Points += points
		p.History = append([]models.HistoryEntry{entry}, p.History...)
		updated = p

		return setPointsTxn(txn, p)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// debitPointsTxn subtracts cost inside an existing transaction, failing
// with ErrInsufficientPoints when the balance does not cover it. The
// balance check and the decrement share the transaction, so two
// concurrent redemptions can never both succeed on one balance.
func debitPointsTxn(txn *badger.Txn, email string, cost int, entry models.HistoryEntry) (*models.Points, error) {
	p, err := getPointsTxn(txn, email)
	if err != nil {
		return nil, err
	}

	if p.Points < cost {
		return nil, ErrInsufficientPoints
	}

	p.Points -= cost
	p.History = append([]models.HistoryEntry{entry}, p.History...)

	if err := setPointsTxn(txn, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PointsTotals walks all points documents and returns the summed balance
// and the number of accounts holding a positive balance.
func (s *Store) PointsTotals() (total, holders int, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(pointsKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p models.Points
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return fmt.Errorf("unmarshal points: %w", err)
			}

			total += p.Points
			if p.Points > 0 {
				holders++
			}
		}
		return nil
	})
	return total, holders, err
}
