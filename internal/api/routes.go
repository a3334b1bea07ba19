package api

import (
	"net/http"

	"github.com/navikt/vrooms/internal/config"
	"github.com/navikt/vrooms/internal/service"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(rooms *service.RoomService, realtime, events http.Handler, cfg config.ServerConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler)

	// Websocket endpoint for room sessions
	mux.Handle("/ws", realtime)

	// Server-sent events stream for the lobby view
	mux.Handle("/events", events)

	// Room management endpoints
	roomHandler := NewRoomHandler(rooms, NewAuthMiddleware(cfg.AdminToken))
	mux.Handle("/api/rooms", roomHandler)
	mux.Handle("/api/rooms/", roomHandler)

	return mux
}
