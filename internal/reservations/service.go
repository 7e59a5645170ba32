// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/milkbar/internal/events"
	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

// ErrNotFound is returned when the reservation ID does not exist.
var ErrNotFound = errors.New("reservations: reservation not found")

// Input carries the client-supplied reservation fields. All fields are
// free text; the booking staff coordinate details over the phone.
type Input struct {
	Name   string
	Phone  string
	Date   string
	Time   string
	Guests string
	Room   string
	Notes  string
	Email  string
	MilkID string
	Source string
}

// Update carries a partial edit; nil fields keep their current value.
type Update struct {
	Name   *string
	Phone  *string
	Date   *string
	Time   *string
	Guests *string
	Room   *string
	Notes  *string
}

// Service implements reservation CRUD and publishes change events for
// the realtime layer.
type Service struct {
	store  *store.Store
	bus    *events.Bus
	logger zerolog.Logger
}

// NewService creates a reservation service.
func NewService(s *store.Store, bus *events.Bus) *Service {
	return &Service{
		store:  s,
		bus:    bus,
		logger: logging.WithComponent("reservations"),
	}
}

// Create stores a new reservation. An explicit source wins; otherwise
// reservations carrying a milk ID are attributed to the mobile app, the
// rest to the public site.
func (s *Service) Create(ctx context.Context, in Input) (*models.Reservation, error) {
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = models.SourceIndex
		if strings.TrimSpace(in.MilkID) != "" {
			source = models.SourceApp
		}
	}

	r := &models.Reservation{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Guests:    strings.TrimSpace(in.Guests),
		Room:      strings.TrimSpace(in.Room),
		Notes:     strings.TrimSpace(in.Notes),
		Email:     identity.NormalizeEmail(in.Email),
		MilkID:    strings.TrimSpace(in.MilkID),
		Source:    source,
		CreatedAt: time.Now(),
	}

	if err := s.store.PutReservation(r); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventNewReservation, r)
	s.logger.Info().Str("reservation_id", r.ID).Str("source", r.Source).Msg("reservation created")
	return r, nil
}

// List returns all reservations, newest first.
func (s *Service) List(ctx context.Context) ([]models.Reservation, error) {
	return s.store.ListReservations("")
}

// ListMine returns the reservations booked under email, newest first.
// A blank email yields an empty list, never the full board.
func (s *Service) ListMine(ctx context.Context, email string) ([]models.Reservation, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return []models.Reservation{}, nil
	}
	return s.store.ListReservations(email)
}

// Edit applies a partial update to an existing reservation.
func (s *Service) Edit(ctx context.Context, id string, upd Update) (*models.Reservation, error) {
	r, err := s.store.GetReservation(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&r.Name, upd.Name)
	apply(&r.Phone, upd.Phone)
	apply(&r.Date, upd.Date)
	apply(&r.Time, upd.Time)
	apply(&r.Guests, upd.Guests)
	apply(&r.Room, upd.Room)
	apply(&r.Notes, upd.Notes)

	if err := s.store.PutReservation(r); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventReservationsUpdated, nil)
	s.logger.Info().Str("reservation_id", id).Msg("reservation updated")
	return r, nil
}

// Delete removes a reservation. Deleting an unknown ID is not an error;
// the admin panel retries freely.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteReservation(id); err != nil {
		return err
	}

	s.publish(ctx, events.EventReservationsUpdated, nil)
	s.logger.Info().Str("reservation_id", id).Msg("reservation deleted")
	return nil
}

// publish pushes a change notification; delivery is best effort and
// never fails the write that triggered it.
func (s *Service) publish(ctx context.Context, eventType string, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("could not publish event")
	}
}
