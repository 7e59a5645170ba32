// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	slogger := slog.New(NewSlogHandler())

	tests := []struct {
		name    string
		logFunc func()
		level   string
	}{
		{"Debug", func() { slogger.Debug("debug msg") }, `"level":"debug"`},
		{"Info", func() { slogger.Info("info msg") }, `"level":"info"`},
		{"Warn", func() { slogger.Warn("warn msg") }, `"level":"warn"`},
		{"Error", func() { slogger.Error("error msg") }, `"level":"error"`},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.logFunc()
		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("%s: expected %s in output: %s", tt.name, tt.level, buf.String())
		}
	}
}

func TestSlogHandlerAttrs(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	slogger := slog.New(NewSlogHandler()).With("service", "http")
	slogger.Info("with attrs", "count", int64(3))

	output := buf.String()
	if !strings.Contains(output, `"service":"http"`) {
		t.Errorf("expected pre-set attr, got: %s", output)
	}
	if !strings.Contains(output, `"count":3`) {
		t.Errorf("expected record attr, got: %s", output)
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(zerolog.New(&buf))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	slogger := slog.New(NewSlogHandler()).WithGroup("hub")
	slogger.Info("grouped", "clients", int64(2))

	if !strings.Contains(buf.String(), `"hub.clients":2`) {
		t.Errorf("expected group-prefixed key, got: %s", buf.String())
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
