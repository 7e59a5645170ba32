// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package services

import (
	"context"
	"time"
)

// ValueLogGC matches *store.Store's garbage collection loop.
type ValueLogGC interface {
	RunValueLogGC(interval time.Duration, done <-chan struct{})
}

// StoreGCService runs Badger value log garbage collection on a timer.
// Badger never reclaims value log space on its own; without this loop
// the database directory grows until the disk fills.
type StoreGCService struct {
	store    ValueLogGC
	interval time.Duration
	name     string
}

// NewStoreGCService creates the wrapper. A typical interval is 5-10
// minutes.
func NewStoreGCService(store ValueLogGC, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service. The GC loop blocks until the context
// is canceled.
func (s *StoreGCService) Serve(ctx context.Context) error {
	s.store.RunValueLogGC(s.interval, ctx.Done())
	return ctx.Err()
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return s.name
}
