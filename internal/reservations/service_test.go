// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/events"
	"github.com/tomtom215/milkbar/internal/models"
	"github.com/tomtom215/milkbar/internal/store"
)

func newTestService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{InMemory: true})
	require.NoError(t, err)
	bus := events.NewBus()
	t.Cleanup(func() {
		require.NoError(t, bus.Close())
		require.NoError(t, s.Close())
	})

	return NewService(s, bus), bus
}

func sample() Input {
	return Input{
		Name:   "Anna Kowalska",
		Phone:  "+48 600 000 000",
		Date:   "2026-09-01",
		Time:   "18:30",
		Guests: "4",
		Room:   "sala duża",
		Notes:  "stolik przy oknie",
		Email:  "Anna@Example.com",
	}
}

func TestCreate(t *testing.T) {
	svc, bus := newTestService(t)
	ctx := context.Background()

	msgs, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	// Publishing blocks until acked, so drain concurrently.
	payloads := make(chan []byte, 4)
	go func() {
		for msg := range msgs {
			msg.Ack()
			payloads <- msg.Payload
		}
	}()

	r, err := svc.Create(ctx, sample())
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Anna Kowalska", r.Name)
	assert.Equal(t, "anna@example.com", r.Email)
	assert.Equal(t, models.SourceIndex, r.Source)
	assert.False(t, r.CreatedAt.IsZero())

	select {
	case payload := <-payloads:
		var ev events.Event
		require.NoError(t, json.Unmarshal(payload, &ev))
		assert.Equal(t, events.EventNewReservation, ev.Type)

		var got models.Reservation
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, r.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestCreateSource(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := sample()
	in.MilkID = "123456"
	r, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.SourceApp, r.Source)

	// A caller-supplied source overrides the milk ID heuristic.
	in = sample()
	in.Source = "kiosk"
	r, err = svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "kiosk", r.Source)
}

func TestListAndListMine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sample())
	require.NoError(t, err)

	other := sample()
	other.Email = "bob@example.com"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListMine(ctx, " ANNA@example.com ")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "anna@example.com", mine[0].Email)

	// A blank email must not fall through to an unfiltered listing.
	none, err := svc.ListMine(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEdit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, sample())
	require.NoError(t, err)

	guests := "6"
	notes := ""
	updated, err := svc.Edit(ctx, r.ID, Update{Guests: &guests, Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "6", updated.Guests)
	assert.Empty(t, updated.Notes)
	// Untouched fields survive the partial edit.
	assert.Equal(t, r.Name, updated.Name)
	assert.Equal(t, r.Room, updated.Room)
}

func TestEditNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "x"
	_, err := svc.Edit(context.Background(), "no-such-id", Update{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, sample())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Idempotent.
	require.NoError(t, svc.Delete(ctx, r.ID))
}
