// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package main is the entry point for the Milkbar server.
//
// Milkbar is the backend for the MilkShake Bar restaurant: customer
// accounts with 6-digit Milk IDs, a points-based loyalty program
// (10 PLN = 1 point), single-use reward codes, table reservations with
// realtime updates, and the "happy bar" announcement banner. Everything
// is served from one binary: the API, the websocket feed and the
// embedded frontend.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layered load (env > YAML > defaults)
//  2. Logging: zerolog, json or console format
//  3. Store: embedded Badger database
//  4. Event bus: watermill gochannel pub/sub
//  5. Services: identity, loyalty, reservations, announcements
//  6. Websocket hub and bus-to-hub forwarder
//  7. HTTP server: chi router with the embedded frontend
//  8. Supervisor tree: suture v4 keeps 4-8 running
//
// # Configuration
//
// Environment variables use the MILKBAR_ prefix with _ separating
// sections, e.g.:
//
//	MILKBAR_SERVER_PORT=3000
//	MILKBAR_DATABASE_PATH=/data/milkbar
//	MILKBAR_AUTH_ADMIN_PIN=2580
//	MILKBAR_AUTH_CLIENTS_PIN=1234
//	MILKBAR_SECURITY_CORS_ORIGINS=https://milkshakebar.pl
//
// A YAML file can be pointed to with CONFIG_PATH. Production mode
// refuses to start without an admin PIN.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// connections, the hub closes websocket clients, and Badger is closed
// last.
package main
