// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package announce manages the "happy bar" banner: a single piece of
// free text shown across all clients, replaced on every update and
// pushed out over the realtime layer.
package announce

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/milkbar/internal/events"
	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

// Service reads and replaces the announcement text.
type Service struct {
	store  *store.Store
	bus    *events.Bus
	logger zerolog.Logger
}

// NewService creates an announcement service.
func NewService(s *store.Store, bus *events.Bus) *Service {
	return &Service{
		store:  s,
		bus:    bus,
		logger: logging.WithComponent("announce"),
	}
}

// Current returns the announcement. A never-set announcement is empty
// text, not an error.
func (s *Service) Current(ctx context.Context) (*models.Announcement, error) {
	return s.store.GetAnnouncement()
}

// Set replaces the announcement and notifies connected clients with the
// new text inline. Empty text clears the banner.
func (s *Service) Set(ctx context.Context, text string) (*models.Announcement, error) {
	a, err := s.store.SetAnnouncement(text, time.Now())
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		payload := map[string]string{"text": a.Text}
		if err := s.bus.Publish(ctx, events.EventHappyUpdated, payload); err != nil {
			s.logger.Warn().Err(err).Msg("could not publish announcement update")
		}
	}

	s.logger.Info().Int("length", len(a.Text)).Msg("announcement updated")
	return a, nil
}

// Log returns past banner texts, oldest first.
func (s *Service) Log(ctx context.Context) ([]models.Announcement, error) {
	return s.store.AnnouncementLog()
}
