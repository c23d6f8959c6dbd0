package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/arunsworld/departures"
)

type tripPage struct {
	RequestedID string
	Trip        departures.TripView
	Error       string
}

// tripIDFromQuery reads the journey id placed as a bare key after '?'.
func tripIDFromQuery(rawQuery string) string {
	id := rawQuery
	if i := strings.IndexByte(id, '&'); i >= 0 {
		id = id[:i]
	}
	if strings.HasPrefix(id, "id=") {
		id = strings.TrimPrefix(id, "id=")
	}
	unescaped, err := url.QueryUnescape(id)
	if err != nil {
		return id
	}
	return unescaped
}

func (h handlers) registerTripHandler() {
	h.handler.HandleFunc("/trip", func(w http.ResponseWriter, r *http.Request) {
		id := tripIDFromQuery(r.URL.RawQuery)
		if id == "" {
			h.render(w, r, "trip.html", tripPage{Error: "Aucun identifiant de trajet spécifié"})
			return
		}
		j, err := h.api.ResolveJourney(r.Context(), id)
		if err != nil {
			logf(r, "error resolving vehicle journey %s: %v", id, err)
			h.render(w, r, "trip.html", tripPage{RequestedID: id, Error: departures.StatusMessage(err)})
			return
		}
		h.render(w, r, "trip.html", tripPage{
			RequestedID: id,
			Trip:        h.api.Trip(j, h.now()),
		})
	}).Methods("GET")
}
