package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"wizard-server/pkg/room"
)

// Mux handles HTTP requests for one hosted game
type Mux struct {
	*gmux.Router
	version string
	server  *room.Server
}

// NewMux returns a new HTTP mux serving the provided game
func NewMux(version string, server *room.Server) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		server:  server,
	}

	r := this.Router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
	})

	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
	r.Methods(http.MethodGet).Path("/game/ws").Handler(this.getGameWS())

	return this
}
