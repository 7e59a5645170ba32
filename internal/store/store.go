// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package store persists all Milkbar documents in an embedded Badger
// database. Documents are JSON values under typed key prefixes:
//
//	user:<email>          account with password hash
//	milkid:<id>           Milk ID -> email mapping
//	points:<email>        loyalty balance and history
//	code:<code>           single-use reward codes
//	reward:<uuid>         reward issuance audit trail
//	reservation:<uuid>    table bookings
//	announcement:current  the happy-bar text
//	announcement:log:<ts> announcement change audit trail
//
// Multi-document operations that must be atomic (account creation,
// reward redemption, conditional debits) run inside a single Update
// transaction.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/logging"
)

// Sentinel errors returned by store operations. Callers match these with
// errors.Is and map them to HTTP statuses at the API boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMilkIDTaken        = errors.New("milk ID already allocated")
	ErrCodeTaken          = errors.New("reward code already exists")
	ErrCodeUsed           = errors.New("reward code already used")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Key prefixes for Badger storage.
const (
	userKeyPrefix        = "user:"
	milkIDKeyPrefix      = "milkid:"
	pointsKeyPrefix      = "points:"
	codeKeyPrefix        = "code:"
	rewardKeyPrefix      = "reward:"
	reservationKeyPrefix = "reservation:"

	announcementCurrentKey = "announcement:current"
	announcementLogPrefix  = "announcement:log:"
)

// Store wraps the Badger database with Milkbar document operations.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the Badger database described by cfg.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	logger := logging.WithComponent("store")

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(badgerLogger{logger: logger})
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Store opened")

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database accepts reads. Used by the health endpoint.
func (s *Store) Ping() error {
	return s.db.View(func(_ *badger.Txn) error { return nil })
}

// RunValueLogGC runs Badger value log garbage collection until the
// context is cancelled. No-op churn is normal on small datasets.
func (s *Store) RunValueLogGC(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn().Err(err).Msg("Value log GC failed")
			}
		}
	}
}

// countPrefix counts keys under a prefix without fetching values.
func (s *Store) countPrefix(prefix string) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// badgerLogger adapts zerolog to badger.Logger. Badger's own output is
// noisy at INFO, so it is demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msg(trimBadgerMsg(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msg(trimBadgerMsg(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msg(trimBadgerMsg(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msg(trimBadgerMsg(format, args...))
}

func trimBadgerMsg(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
