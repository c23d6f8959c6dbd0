package handlers

import (
	"errors"
	"net/http"

	"github.com/arunsworld/departures"
	"github.com/gorilla/mux"
)

type boardPage struct {
	Board              departures.Board
	Filters            []departures.FilterOption
	Message            string
	FilteredOutMessage string
}

func (h handlers) registerBoardHandler() {
	boardGET := h.handler.PathPrefix("/board/").Methods("GET").Subrouter()
	boardGET.HandleFunc("/{stop_area_id}", func(w http.ResponseWriter, r *http.Request) {
		stopAreaID := mux.Vars(r)["stop_area_id"]
		queryParams := r.URL.Query()
		station := departures.Station{
			ID:    stopAreaID,
			Label: queryParams.Get("label"),
		}
		if station.Label == "" {
			station.Label = stopAreaID
		}
		deps, err := h.api.DeparturesFor(r.Context(), stopAreaID, h.now())
		if err != nil && !errors.Is(err, departures.ErrEmptyResult) {
			logf(r, "error fetching departures for %s: %v", stopAreaID, err)
			h.render(w, r, "board.html", boardPage{
				Board:              departures.Board{Station: station, Filter: departures.FilterAll},
				Filters:            departures.FilterOptions,
				Message:            departures.StatusMessage(err),
				FilteredOutMessage: departures.FilteredOutMessage,
			})
			return
		}
		board := h.api.Board(departures.BoardState{
			Station:    station,
			Departures: deps,
			Filter:     queryParams.Get("type"),
		})
		h.render(w, r, "board.html", boardPage{
			Board:              board,
			Filters:            departures.FilterOptions,
			Message:            board.Message,
			FilteredOutMessage: departures.FilteredOutMessage,
		})
	})
}
