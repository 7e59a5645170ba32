// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package supervisor builds the suture v4 supervision tree that keeps the
server's long-running components alive.

The tree has three layers for failure isolation:

	milkbar (root)
	├── data-layer       Badger value log GC
	├── messaging-layer  websocket hub, event forwarder
	└── api-layer        HTTP server

A crash in the messaging layer restarts the hub and forwarder without
touching the HTTP server; connected kiosks reconnect and re-fetch state.
Restart storms back off per the configured failure threshold and decay.

Supervisor events are logged through sutureslog into the zerolog
pipeline via logging.NewSlogLogger.
*/
package supervisor
