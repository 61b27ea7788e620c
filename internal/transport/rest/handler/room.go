package handler

import (
	"net/http"

	"tagarena/internal/cache"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	presence cache.PresenceCache
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(presence cache.PresenceCache) *RoomHandler {
	return &RoomHandler{presence: presence}
}

// List handles GET /v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.presence.ListRooms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}
