package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/navikt/vrooms/internal/repository"
	"github.com/navikt/vrooms/internal/service"
	"github.com/navikt/vrooms/internal/utils"
)

// RoomHandler handles HTTP requests for room management. The page layer
// uses it to create rooms and to validate codes on the join form; the
// realtime flow itself runs over the websocket endpoint.
type RoomHandler struct {
	rooms *service.RoomService
	auth  *AuthMiddleware
}

// NewRoomHandler creates a new room handler with the given service
func NewRoomHandler(rooms *service.RoomService, auth *AuthMiddleware) *RoomHandler {
	return &RoomHandler{
		rooms: rooms,
		auth:  auth,
	}
}

// createRoomRequest is the payload for POST /api/rooms
type createRoomRequest struct {
	Name         string `json:"name"`
	MeetingTitle string `json:"meeting_title"`
	Mode         string `json:"mode"`
}

// ServeHTTP handles HTTP requests for room management
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Path format: /api/rooms/{code}
	var code string
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) >= 4 && pathParts[3] != "" {
		code = pathParts[3]
	}

	switch {
	case r.Method == http.MethodGet && code == "":
		h.listRooms(w, r)
	case r.Method == http.MethodGet:
		h.getRoom(w, r, code)
	case r.Method == http.MethodPost && code == "":
		h.createRoom(w, r)
	case r.Method == http.MethodDelete && code != "":
		h.auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			h.deleteRoom(w, r, code)
		})(w, r)
	default:
		http.NotFound(w, r)
	}
}

// createRoom handles POST /api/rooms to create a new room
func (h *RoomHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create room request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		http.Error(w, "A participant name is required", http.StatusBadRequest)
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), req.Name, req.MeetingTitle, req.Mode)
	if err != nil {
		if errors.Is(err, service.ErrCapacityExhausted) {
			log.Printf("Room creation failed: %v", err)
			http.Error(w, "No room codes available", http.StatusServiceUnavailable)
			return
		}
		log.Printf("Error creating room: %v", err)
		http.Error(w, "Error creating room", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(room)
}

// listRooms handles GET /api/rooms to list room statuses for the lobby
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.rooms.GetRoomStatusData(r.Context())
	if err != nil {
		log.Printf("Error listing rooms: %v", err)
		http.Error(w, "Error retrieving rooms", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(statuses)
}

// getRoom handles GET /api/rooms/{code}; the page layer uses it to
// validate a code before opening the websocket
func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request, code string) {
	room, err := h.rooms.GetRoom(r.Context(), code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Error getting room %s: %v", utils.SanitizeLogString(code), err)
		}
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(room)
}

// deleteRoom handles DELETE /api/rooms/{code} for operator cleanup
func (h *RoomHandler) deleteRoom(w http.ResponseWriter, r *http.Request, code string) {
	if err := h.rooms.DeleteRoom(r.Context(), code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting room: %v", err)
		http.Error(w, "Error deleting room", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"message": "Room deleted successfully",
	})
}
