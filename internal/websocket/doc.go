// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package websocket pushes live updates to connected clients: new
reservations for the admin panel, reservation list changes, and
announcement updates for the app and the public site.

It uses the gorilla/websocket library with a hub-client architecture.
The Hub fans pre-encoded event frames out to every connected Client;
frames originate on the internal event bus and reach the hub through
its BroadcastRaw method.

Clients are one-directional display surfaces. The server greets each
connection with a hello frame and never replays missed events; a client
that (re)connects re-fetches current state over HTTP.

Slow clients are dropped rather than buffered without bound: when a
client's send queue is full its connection is closed, and the normal
reconnect path brings it back in sync.
*/
package websocket
