// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/milkbar/internal/logging"
)

// Bus is the in-process event bus. It is both publisher and subscriber
// side of a single gochannel pub/sub.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus. The output buffer absorbs short bursts (a rush
// of reservations) without blocking the publishing request handler.
// Publishing blocks until the forwarder acks, which it does immediately
// on handoff, so events reach the hub in publish order.
func NewBus() *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		},
		newWatermillLogger(),
	)

	return &Bus{pubsub: pubsub}
}

// Publish emits an event to the realtime topic. Publishing is
// fire-and-forget from the caller's perspective: a failed publish is an
// error but never rolls back the domain mutation that caused it.
func (b *Bus) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := Encode(eventType, payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(TopicRealtime, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	logging.Ctx(ctx).Debug().
		Str("event", eventType).
		Msg("Event published")

	return nil
}

// Subscribe returns the realtime event stream. Messages must be Acked.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicRealtime)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// watermillLogger adapts zerolog to watermill.LoggerAdapter.
type watermillLogger struct {
	fields watermill.LogFields
}

func newWatermillLogger() watermill.LoggerAdapter {
	return &watermillLogger{}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	logging.Error().Err(err).Fields(map[string]any(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	// Watermill is chatty at info; keep transport internals at debug.
	logging.Debug().Fields(map[string]any(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]any(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	logging.Debug().Fields(map[string]any(l.fields.Add(fields))).Msg(msg)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{fields: l.fields.Add(fields)}
}
