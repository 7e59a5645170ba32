// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/milkbar/internal/announce"
	"github.com/tomtom215/milkbar/internal/api"
	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/events"
	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/loyalty"
	"github.com/tomtom215/milkbar/internal/reservations"
	"github.com/tomtom215/milkbar/internal/store"
	"github.com/tomtom215/milkbar/internal/supervisor"
	"github.com/tomtom215/milkbar/internal/supervisor/services"
	ws "github.com/tomtom215/milkbar/internal/websocket"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_path", cfg.Database.Path).
		Bool("admin_pin_set", cfg.Auth.AdminPIN != "").
		Bool("clients_pin_set", cfg.Auth.ClientsPIN != "").
		Msg("Starting Milkbar")

	st, err := store.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	bus := events.NewBus()
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	ids := identity.NewService(st, cfg.Auth.BcryptCost)
	loy := loyalty.NewService(st)
	res := reservations.NewService(st, bus)
	ann := announce.NewService(st, bus)

	hub := ws.NewHub()
	forwarder := events.NewForwarder(bus, hub)

	handler := api.NewHandler(st, ids, loy, res, ann, hub, cfg)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if !cfg.Database.InMemory {
		tree.AddDataService(services.NewStoreGCService(st, 5*time.Minute))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddMessagingService(services.NewForwarderService(forwarder))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Milkbar stopped gracefully")
}
