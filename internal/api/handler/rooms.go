package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsmatch-go/internal/api/apierr"
	"github.com/mcoot/rpsmatch-go/internal/api/response"
	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
)

// RoomsHandler exposes read-only views of the room registry
type RoomsHandler struct {
	controller *match.Controller
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(controller *match.Controller) *RoomsHandler {
	return &RoomsHandler{controller: controller}
}

// List handles GET /api/v1/rooms
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.controller.ListRooms(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := response.RoomList{Rooms: make([]response.Room, 0, len(rooms))}
	for _, room := range rooms {
		out.Rooms = append(out.Rooms, response.RoomFromModel(room))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	room, err := h.controller.GetRoom(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.RoomFromModel(room))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
