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

// IssueRewardCode performs a complete redemption in one transaction:
// verify the code is unused, debit the points balance (failing with
// ErrInsufficientPoints when it does not cover the cost), persist the
// code document, the reward audit record and the history entry. Either
// everything commits or nothing does.
func (s *Store) IssueRewardCode(code *models.RewardCode, record *models.RewardRecord, entry models.HistoryEntry) (*models.Points, error) {
	codeData, err := json.Marshal(code)
	if err != nil {
		return nil, fmt.Errorf("marshal code: %w", err)
	}
	recordData, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal reward record: %w", err)
	}

	var updated *models.Points

	err = s.db.Update(func(txn *badger.Txn) error {
		codeKey := []byte(codeKeyPrefix + code.Code)
		if _, err := txn.Get(codeKey); err == nil {
			return ErrCodeTaken
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check code: %w", err)
		}

		p, err := debitPointsTxn(txn, code.Email, code.Cost, entry)
		if err != nil {
			return err
		}
		updated = p

		if err := txn.Set(codeKey, codeData); err != nil {
			return fmt.Errorf("set code: %w", err)
		}
		if err := txn.Set([]byte(rewardKeyPrefix+record.ID), recordData); err != nil {
			return fmt.Errorf("set reward record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// CodeExists reports whether a reward code is already issued.
func (s *Store) CodeExists(code string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(codeKeyPrefix + code))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check code: %w", err)
	}
	return true, nil
}

// GetCode retrieves a reward code document.
func (s *Store) GetCode(code string) (*models.RewardCode, error) {
	var doc models.RewardCode

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(codeKeyPrefix + code))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get code: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// UseCode marks a code as used, atomically. If it was already used the
// stored document is returned alongside ErrCodeUsed so the caller can
// report when and by whom it was burned.
func (s *Store) UseCode(code, usedBy string, at time.Time) (*models.RewardCode, error) {
	var doc models.RewardCode

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(codeKeyPrefix + code)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get code: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		}); err != nil {
			return fmt.Errorf("unmarshal code: %w", err)
		}

		if doc.Status == models.CodeStatusUsed {
			return ErrCodeUsed
		}

		doc.Status = models.CodeStatusUsed
		doc.UsedAt = &at
		doc.UsedBy = usedBy

		data, err := json.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("marshal code: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		// ErrCodeUsed still carries the document for the conflict payload.
		if errors.Is(err, ErrCodeUsed) {
			return &doc, err
		}
		return nil, err
	}

	return &doc, nil
}

// MarkRewardsRedeemed flips matching reward audit records to "redeemed".
// Callers treat failures as non-fatal: the code itself is the source of
// truth, the records are bookkeeping.
func (s *Store) MarkRewardsRedeemed(code string) error {
	// Collect IDs first; rewriting values while iterating them is fragile.
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(rewardKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec models.RewardRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("unmarshal reward record: %w", err)
			}
			if rec.Code == code {
				ids = append(ids, rec.ID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			key := []byte(rewardKeyPrefix + id)
			item, err := txn.Get(key)
			if err != nil {
				continue
			}

			var rec models.RewardRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				continue
			}

			rec.Status = models.RewardStatusRedeemed
			data, err := json.Marshal(&rec)
			if err != nil {
				continue
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set reward record: %w", err)
			}
		}
		return nil
	})
}

// CountCodes returns the number of issued reward codes.
func (s *Store) CountCodes() (int, error) {
	return s.countPrefix(codeKeyPrefix)
}

// CountUsedCodes returns the number of burned reward codes.
func (s *Store) CountUsedCodes() (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(codeKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var doc models.RewardCode
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return fmt.Errorf("unmarshal code: %w", err)
			}
			if doc.Status == models.CodeStatusUsed {
				count++
			}
		}
		return nil
	})

	return count, err
}
