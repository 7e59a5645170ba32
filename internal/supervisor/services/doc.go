// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package services adapts the server's long-running components to
suture.Service so the supervision tree can restart them independently.

Wrappers:

  - HTTPServerService: translates http.Server's blocking ListenAndServe
    into context-aware Serve with graceful Shutdown.
  - WebSocketHubService: delegates to the hub's RunWithContext.
  - ForwarderService: runs the event bus to websocket forwarder.
  - StoreGCService: periodic Badger value log garbage collection.

Each wrapper implements fmt.Stringer; the name shows up in supervisor
restart logs.
*/
package services
