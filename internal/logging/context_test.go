// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d: %s", len(id), id)
	}

	other := GenerateCorrelationID()
	if id == other {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id := GenerateRequestID()
	if len(id) != 36 {
		t.Errorf("expected UUID-length request ID, got %d: %s", len(id), id)
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("expected empty correlation ID, got %q", got)
	}

	ctx = ContextWithCorrelationID(ctx, "abc12345")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("expected 'abc12345', got %q", got)
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	t.Parallel()

	ctx := ContextWithNewCorrelationID(context.Background())
	id := CorrelationIDFromContext(ctx)
	if len(id) != 8 {
		t.Errorf("expected generated 8-character correlation ID, got %q", id)
	}

	other := CorrelationIDFromContext(ContextWithNewCorrelationID(context.Background()))
	if id == other {
		t.Error("expected each context to get a fresh correlation ID")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("expected 'req-1', got %q", got)
	}
}

func TestCtxAddsFields(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())

	ctx := ContextWithCorrelationID(context.Background(), "corr-id")
	ctx = ContextWithRequestID(ctx, "req-id")

	Ctx(ctx).Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"corr-id"`) {
		t.Errorf("expected correlation_id field, got: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-id"`) {
		t.Errorf("expected request_id field, got: %s", output)
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	t.Parallel()

	// No logger stored: falls back to the global logger.
	logger := LoggerFromContext(context.Background())
	logger.Info().Msg("no panic")
}

func TestContextWithLogger(t *testing.T) {
	var buf bytes.Buffer

	stored := zerolog.New(&buf).With().Str("scope", "test").Logger()
	ctx := ContextWithLogger(context.Background(), stored)

	logger := LoggerFromContext(ctx)
	logger.Info().Msg("stored logger")

	if !strings.Contains(buf.String(), `"scope":"test"`) {
		t.Errorf("expected stored logger output, got: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())

	logger := WithComponent("store")
	logger.Info().Msg("component log")

	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
