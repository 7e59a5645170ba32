// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/milkbar/internal/models"
)

// GetAnnouncement returns the current happy-bar text. When nothing was
// ever set it returns an empty Announcement, not an error.
func (s *Store) GetAnnouncement() (*models.Announcement, error) {
	ann := &models.Announcement{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(announcementCurrentKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get announcement: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, ann)
		})
	})
	if err != nil {
		return nil, err
	}

	return ann, nil
}

// SetAnnouncement upserts the current happy-bar text and appends the
// change to the audit log in the same transaction. The log key carries
// the change timestamp in nanoseconds so entries sort chronologically.
func (s *Store) SetAnnouncement(text string, at time.Time) (*models.Announcement, error) {
	ann := &models.Announcement{Text: text, UpdatedAt: at}

	data, err := json.Marshal(ann)
	if err != nil {
		return nil, fmt.Errorf("marshal announcement: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(announcementCurrentKey), data); err != nil {
			return fmt.Errorf("set announcement: %w", err)
		}

		logKey := announcementLogPrefix + strconv.FormatInt(at.UnixNano(), 10)
		if err := txn.Set([]byte(logKey), data); err != nil {
			return fmt.Errorf("append announcement log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ann, nil
}

// AnnouncementLog returns past announcement changes, oldest first.
func (s *Store) AnnouncementLog() ([]models.Announcement, error) {
	list := []models.Announcement{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(announcementLogPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var ann models.Announcement
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ann)
			}); err != nil {
				return fmt.Errorf("unmarshal announcement: %w", err)
			}
			list = append(list, ann)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}
