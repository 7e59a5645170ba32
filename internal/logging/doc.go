// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

// Package logging provides centralized zerolog-based structured logging
// for Milkbar.
//
// A single global logger is configured once at startup and accessed through
// package-level helpers. JSON output for production, console output for
// development.
//
// # Quick Start
//
//	import "github.com/tomtom215/milkbar/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("milk_id", id).Msg("Points credited")
//	logging.Error().Err(err).Msg("Request failed")
//
//	// Context-aware logging carries request/correlation IDs
//	logging.Ctx(ctx).Info().Msg("Processing request")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	logging.Info().Str("code", code).Int("balance", b).Msg("Reward redeemed")
//
// # slog Adapter
//
// NewSlogLogger returns an *slog.Logger backed by zerolog for libraries
// that require slog (the suture supervisor log bridge).
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
package logging
