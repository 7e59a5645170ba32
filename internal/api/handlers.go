// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/milkbar/internal/announce"
	"github.com/tomtom215/milkbar/internal/config"
	"github.com/tomtom215/milkbar/internal/identity"
	"github.com/tomtom215/milkbar/internal/logging"
	"github.com/tomtom215/milkbar/internal/loyalty"
	"github.com/tomtom215/milkbar/internal/reservations"
	"github.com/tomtom215/milkbar/internal/store"
	ws "github.com/tomtom215/milkbar/internal/websocket"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, websocket upgrade
//   - handlers_auth.go: PIN gates, account register/login, milk ID lookup
//   - handlers_points.go: points snapshot and cashier credit
//   - handlers_rewards.go: reward redemption and code check/use
//   - handlers_reservations.go: reservation CRUD
//   - handlers_announce.go: announcement bar
//   - handlers_health.go: health probes and admin stats
type Handler struct {
	store        *store.Store
	identity     *identity.Service
	loyalty      *loyalty.Service
	reservations *reservations.Service
	announce     *announce.Service
	wsHub        *ws.Hub
	config       *config.Config
	startTime    time.Time
}

// NewHandler creates the API handler with all service dependencies.
func NewHandler(
	st *store.Store,
	ids *identity.Service,
	loy *loyalty.Service,
	res *reservations.Service,
	ann *announce.Service,
	hub *ws.Hub,
	cfg *config.Config,
) *Handler {
	return &Handler{
		store:        st,
		identity:     ids,
		loyalty:      loy,
		reservations: res,
		announce:     ann,
		wsHub:        hub,
		config:       cfg,
		startTime:    time.Now(),
	}
}

// getUpgrader builds the websocket upgrader with origin checking and a
// handshake timeout against slow-client attacks.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates connection origins against the CORS
// allow list. A missing Origin header means a non-browser client and
// is allowed through.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("websocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and hands it to the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
