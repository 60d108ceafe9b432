package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsmatch-go/internal/api/handler"
	"github.com/mcoot/rpsmatch-go/internal/middleware"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
	"github.com/mcoot/rpsmatch-go/internal/transport/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *match.Controller
	Hub        *ws.Hub
}

// NewRouter creates the HTTP router: the websocket entry point plus a small
// read-only inspection API over the registry
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomsHandler := handler.NewRoomsHandler(cfg.Controller)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Game transport
	r.HandleFunc("/ws", cfg.Hub.ServeWS)

	// Inspection API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/rooms", roomsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomsHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
