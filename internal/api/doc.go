// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

/*
Package api provides the HTTP surface: routing with Chi, request
decoding and validation, the JSON wire contract, and the websocket
upgrade endpoint.

The wire contract is flat JSON objects with an "ok" boolean, matching
what the frontends (public site, customer app, admin panel) consume:

	{"ok": true, "points": 29, "history": [...]}
	{"ok": false, "message": "Za mało punktów."}

User-facing error messages are Polish; they are rendered verbatim by
the clients. Reservation listings are the one exception to the
envelope: they return bare JSON arrays.

Route groups:

  - /api/login, /api/clients/unlock, /api/auth/* - identity and PIN
    gates, with strict rate limits against brute force
  - /api/milkpoints/*, /api/rewards/*, /api/codeid/* - loyalty program
  - /api/rezerwacje* - reservation CRUD
  - /api/data, /api/happy - announcement banner
  - /api/admin/* - cashier/admin operations, guarded by the X-Admin-Pin
    header
  - /api/health*, /metrics, /ws - operational endpoints
  - everything else - embedded static frontend with SPA fallback
*/
package api
