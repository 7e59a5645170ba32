// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/milkbar/internal/logging"
)

// Broadcaster fans an encoded event out to connected clients. The
// websocket hub implements this.
type Broadcaster interface {
	BroadcastRaw(data []byte)
}

// Forwarder bridges the event bus to the realtime broadcaster.
type Forwarder struct {
	bus    *Bus
	target Broadcaster
	logger zerolog.Logger
}

// NewForwarder creates a forwarder from the bus to the given broadcaster.
func NewForwarder(bus *Bus, target Broadcaster) *Forwarder {
	return &Forwarder{
		bus:    bus,
		target: target,
		logger: logging.WithComponent("event-forwarder"),
	}
}

// Run consumes the realtime topic until the context is cancelled,
// pushing every event to the broadcaster. Returns nil on context
// cancellation and an error only if the subscription itself fails.
func (f *Forwarder) Run(ctx context.Context) error {
	messages, err := f.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	f.logger.Info().Msg("Event forwarder started")

	for {
		select {
		case <-ctx.Done():
			f.logger.Info().Msg("Event forwarder stopping")
			return nil
		case msg, ok := <-messages:
			if !ok {
				f.logger.Info().Msg("Event stream closed")
				return nil
			}

			f.target.BroadcastRaw(msg.Payload)
			msg.Ack()
		}
	}
}
