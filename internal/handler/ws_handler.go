package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wealthin/agent-backend/internal/ws"
)

// WSValidator validates a connection token and resolves the user_id it
// belongs to (satisfied by *ws.Auth0JWTValidator).
type WSValidator interface {
	ValidateToken(token string) (userID string, err error)
}

// WSHandler upgrades GET /ws into a push-channel connection for one user
// (spec §4.11/§6.1, grounded on the teacher's websocket_handler.go).
type WSHandler struct {
	hub            *ws.Hub
	validator      WSValidator
	allowedOrigins map[string]bool
	upgrader       gorilla.Upgrader
}

// NewWSHandler builds a WSHandler restricting cross-origin upgrades to
// allowedOrigins (empty origin header, e.g. non-browser clients, is
// always allowed).
func NewWSHandler(hub *ws.Hub, validator WSValidator, allowedOrigins []string) *WSHandler {
	originMap := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originMap[o] = true
	}

	h := &WSHandler{hub: hub, validator: validator, allowedOrigins: originMap}
	h.upgrader = gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if h.allowedOrigins[origin] {
		return true
	}
	log.Warn().Str("origin", origin).Msg("ws: connection rejected, origin not allowed")
	return false
}

// HandleWS handles GET /ws?token=... connection upgrades.
func (h *WSHandler) HandleWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	userID, err := h.validator.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("ws: connection rejected, invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return err
	}

	client := ws.NewClient(conn, userID, h.hub)
	h.hub.Register(client)

	log.Info().Str("user_id", userID).Str("client_id", client.ID()).Msg("ws: client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
