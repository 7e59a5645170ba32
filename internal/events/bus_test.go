// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	data, err := Encode(EventHappyUpdated, "happy hours 15-17")
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, EventHappyUpdated, ev.Type)
	assert.Equal(t, `"happy hours 15-17"`, string(ev.Data))
}

func TestEncodeNilPayload(t *testing.T) {
	t.Parallel()

	data, err := Encode(EventReservationsUpdated, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"reservations-updated"}`, string(data))
}

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	// Publish blocks until the subscriber acks, so it runs concurrently
	// with the receive below.
	published := make(chan error, 1)
	go func() {
		published <- bus.Publish(ctx, EventHappyUpdated, "nowy tekst")
	}()

	select {
	case msg := <-messages:
		var ev Event
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		assert.Equal(t, EventHappyUpdated, ev.Type)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	select {
	case err := <-published:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("publish did not return after ack")
	}
}

// captureBroadcaster records everything forwarded to it.
type captureBroadcaster struct {
	mu   sync.Mutex
	got  [][]byte
	seen chan struct{}
}

func newCaptureBroadcaster() *captureBroadcaster {
	return &captureBroadcaster{seen: make(chan struct{}, 16)}
}

func (c *captureBroadcaster) BroadcastRaw(data []byte) {
	c.mu.Lock()
	c.got = append(c.got, data)
	c.mu.Unlock()
	c.seen <- struct{}{}
}

func (c *captureBroadcaster) payloads() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.got...)
}

func TestForwarderDeliversEvents(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	target := newCaptureBroadcaster()
	forwarder := NewForwarder(bus, target)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- forwarder.Run(ctx)
	}()

	// Give the subscription a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, bus.Publish(ctx, EventNewReservation, map[string]string{"id": "res-1"}))
	require.NoError(t, bus.Publish(ctx, EventReservationsUpdated, nil))

	for i := 0; i < 2; i++ {
		select {
		case <-target.seen:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for forwarded event")
		}
	}

	payloads := target.payloads()
	require.Len(t, payloads, 2)

	// Publish order survives the bus: the publisher blocks until the
	// forwarder acks each message.
	var first, second Event
	require.NoError(t, json.Unmarshal(payloads[0], &first))
	require.NoError(t, json.Unmarshal(payloads[1], &second))
	assert.Equal(t, EventNewReservation, first.Type)
	assert.Equal(t, EventReservationsUpdated, second.Type)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder did not stop on cancel")
	}
}
