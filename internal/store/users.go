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

// CreateUser stores a new account together with its Milk ID mapping and
// an empty points document, all in one transaction. Returns ErrEmailTaken
// if the email already has an account and ErrMilkIDTaken if the Milk ID
// lost the uniqueness race.
func (s *Store) CreateUser(user *models.StoredUser) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	mapping := models.MilkIDMapping{
		MilkID:    user.MilkID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	mappingData, err := json.Marshal(&mapping)
	if err != nil {
		return fmt.Errorf("marshal milk ID mapping: %w", err)
	}

	points := models.Points{
		Email:     user.Email,
		Points:    0,
		History:   []models.HistoryEntry{},
		UpdatedAt: user.CreatedAt,
	}
	pointsData, err := json.Marshal(&points)
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		userKey := []byte(userKeyPrefix + user.Email)
		if _, err := txn.Get(userKey); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check user: %w", err)
		}

		milkKey := []byte(milkIDKeyPrefix + user.MilkID)
		if _, err := txn.Get(milkKey); err == nil {
			return ErrMilkIDTaken
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check milk ID: %w", err)
		}

		if err := txn.Set(userKey, userData); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(milkKey, mappingData); err != nil {
			return fmt.Errorf("set milk ID mapping: %w", err)
		}
		if err := txn.Set([]byte(pointsKeyPrefix+user.Email), pointsData); err != nil {
			return fmt.Errorf("set points: %w", err)
		}
		return nil
	})
}

// GetUser retrieves an account by normalized email.
func (s *Store) GetUser(email string) (*models.StoredUser, error) {
	var user models.StoredUser

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// TouchLastLogin updates the account's last login timestamp and, for
// accounts predating Milk IDs, attaches a freshly allocated ID with its
// mapping in the same transaction.
func (s *Store) TouchLastLogin(email, milkID string, at time.Time) (*models.StoredUser, error) {
	var user models.StoredUser

	err := s.db.Update(func(txn *badger.Txn) error {
		userKey := []byte(userKeyPrefix + email)
		item, err := txn.Get(userKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		}); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}

		user.LastLoginAt = at
		if user.MilkID == "" {
			user.MilkID = milkID
		}

		// Re-assert the mapping so the Milk ID always resolves, even for
		// documents written before mappings existed.
		mapping := models.MilkIDMapping{
			MilkID:    user.MilkID,
			Email:     email,
			CreatedAt: at,
		}
		mappingData, err := json.Marshal(&mapping)
		if err != nil {
			return fmt.Errorf("marshal milk ID mapping: %w", err)
		}
		if err := txn.Set([]byte(milkIDKeyPrefix+user.MilkID), mappingData); err != nil {
			return fmt.Errorf("set milk ID mapping: %w", err)
		}

		userData, err := json.Marshal(&user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set(userKey, userData)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetMilkIDMapping resolves a Milk ID to the owning account.
func (s *Store) GetMilkIDMapping(milkID string) (*models.MilkIDMapping, error) {
	var mapping models.MilkIDMapping

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(milkIDKeyPrefix + milkID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get milk ID mapping: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &mapping)
		})
	})
	if err != nil {
		return nil, err
	}

	return &mapping, nil
}

// MilkIDExists reports whether a Milk ID is already allocated.
func (s *Store) MilkIDExists(milkID string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(milkIDKeyPrefix + milkID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check milk ID: %w", err)
	}
	return true, nil
}

// CountUsers returns the number of registered accounts.
func (s *Store) CountUsers() (int, error) {
	return s.countPrefix(userKeyPrefix)
}

// CountMilkIDs returns the number of allocated Milk IDs.
func (s *Store) CountMilkIDs() (int, error) {
	return s.countPrefix(milkIDKeyPrefix)
}
