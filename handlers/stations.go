package handlers

import (
	"net/http"
)

func (h handlers) registerStationsHandler() {
	h.handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "index.html", struct {
			Query string
		}{
			Query: r.URL.Query().Get("q"),
		})
	}).Methods("GET")
}
