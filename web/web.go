// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package web embeds the static frontend so the server ships as a
// single binary.
package web

import "embed"

// Files holds the frontend assets: the public site (index.html), the
// customer app (app.html), the admin panel (admin.html), the PWA
// manifest and the service worker.
//
//go:embed index.html app.html admin.html manifest.webmanifest favicon.svg sw.js
var Files embed.FS
