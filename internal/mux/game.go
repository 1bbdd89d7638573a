package mux

import "net/http"

type gameResponse struct {
	UUID  string `json:"uuid"`
	Seats int    `json:"seats"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gameResponse{
			UUID:  m.server.UUID(),
			Seats: m.server.SeatCount(),
		})
	}
}
