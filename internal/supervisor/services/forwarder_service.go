// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package services

import (
	"context"
)

// ContextRunner matches *events.Forwarder's Run method.
type ContextRunner interface {
	Run(ctx context.Context) error
}

// ForwarderService wraps the event bus forwarder as a supervised
// service. The forwarder moves bus messages to the websocket hub; a
// restart re-subscribes and continues with new events.
type ForwarderService struct {
	runner ContextRunner
	name   string
}

// NewForwarderService creates the wrapper.
func NewForwarderService(runner ContextRunner) *ForwarderService {
	return &ForwarderService{
		runner: runner,
		name:   "event-forwarder",
	}
}

// Serve implements suture.Service.
func (f *ForwarderService) Serve(ctx context.Context) error {
	return f.runner.Run(ctx)
}

// String identifies the service in supervisor logs.
func (f *ForwarderService) String() string {
	return f.name
}
