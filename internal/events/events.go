// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package events is the in-process pub/sub bus between domain services
// and the realtime layer, built on Watermill's gochannel transport.
//
// Mutating operations publish domain events here instead of talking to
// the websocket hub directly; a Forwarder subscribes and fans messages
// out to connected clients. Events are notifications, not state: the
// bus never replays, and clients re-fetch current state over HTTP after
// (re)connecting.
package events

import (
	"github.com/goccy/go-json"
)

// TopicRealtime carries every event destined for websocket clients.
const TopicRealtime = "realtime"

// Event types fanned out to clients.
const (
	// EventHello greets a client after connect. Data is the server time.
	// No missed events are replayed; the client fetches state itself.
	EventHello = "hello"

	// EventNewReservation carries the full reservation record.
	EventNewReservation = "new-reservation"

	// EventReservationsUpdated signals list changes with no payload;
	// interested clients re-fetch.
	EventReservationsUpdated = "reservations-updated"

	// EventHappyUpdated carries the new announcement text inline.
	EventHappyUpdated = "happy-updated"
)

// Event is the wire envelope for realtime notifications.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode builds the JSON wire form of an event. A nil payload produces
// an envelope with no data field.
func Encode(eventType string, payload any) ([]byte, error) {
	ev := Event{Type: eventType}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}

	return json.Marshal(&ev)
}
