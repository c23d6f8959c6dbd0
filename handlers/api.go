package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/arunsworld/departures"
	"github.com/gorilla/mux"
)

type stationJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// stationsResponse echoes the caller's sequence number so late answers can be dropped.
type stationsResponse struct {
	Seq      uint64        `json:"seq"`
	Stations []stationJSON `json:"stations"`
	Error    string        `json:"error,omitempty"`
}

type timeJSON struct {
	Scheduled string `json:"scheduled"`
	Observed  string `json:"observed,omitempty"`
	Status    string `json:"status"`
	Minutes   int    `json:"minutes"`
	Label     string `json:"label"`
}

func toTimeJSON(r departures.Reconciliation) timeJSON {
	return timeJSON{
		Scheduled: r.Scheduled,
		Observed:  r.Observed,
		Status:    string(r.Status.Kind),
		Minutes:   r.Status.Minutes,
		Label:     r.Status.Label(),
	}
}

type rowJSON struct {
	Line             string   `json:"line"`
	Color            string   `json:"color"`
	Mission          string   `json:"mission"`
	Destination      string   `json:"destination"`
	Time             timeJSON `json:"time"`
	Category         string   `json:"category"`
	Family           string   `json:"family"`
	Type             string   `json:"type"`
	VehicleJourneyID string   `json:"vehicle_journey_id,omitempty"`
}

type departuresResponse struct {
	StopAreaID string    `json:"stop_area_id"`
	Filter     string    `json:"filter"`
	Total      int       `json:"total"`
	Rows       []rowJSON `json:"rows"`
	Message    string    `json:"message,omitempty"`
}

type stopJSON struct {
	Name      string   `json:"name"`
	Platform  string   `json:"platform"`
	Arrival   timeJSON `json:"arrival"`
	Departure timeJSON `json:"departure"`
	Marker    string   `json:"marker"`
}

type journeyResponse struct {
	ID          string     `json:"id"`
	RequestedID string     `json:"requested_id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Route       string     `json:"route,omitempty"`
	CoachInfo   string     `json:"coach_info"`
	Status      string     `json:"status"`
	NextStop    string     `json:"next_stop,omitempty"`
	Current     int        `json:"current"`
	Next        int        `json:"next"`
	Stops       []stopJSON `json:"stops"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h handlers) registerAPIHandlers(cors mux.MiddlewareFunc) {
	apiGET := h.handler.PathPrefix("/api/").Methods("GET", "OPTIONS").Subrouter()
	apiGET.Use(cors)
	apiGET.HandleFunc("/stations", h.stationsJSON)
	apiGET.HandleFunc("/departures/{stop_area_id}", h.departuresJSON)
	apiGET.HandleFunc("/journey", h.journeyJSON)
}

func (h handlers) stationsJSON(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	seq, _ := strconv.ParseUint(queryParams.Get("seq"), 10, 64)
	stations, err := h.api.SearchStations(r.Context(), queryParams.Get("q"))
	if err != nil {
		logf(r, "error searching stations: %v", err)
		writeJSON(w, r, http.StatusBadGateway, stationsResponse{
			Seq:      seq,
			Stations: []stationJSON{},
			Error:    departures.StatusMessage(err),
		})
		return
	}
	result := stationsResponse{Seq: seq, Stations: make([]stationJSON, 0, len(stations))}
	for _, s := range stations {
		result.Stations = append(result.Stations, stationJSON{ID: s.ID, Label: s.Label})
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h handlers) departuresJSON(w http.ResponseWriter, r *http.Request) {
	stopAreaID := mux.Vars(r)["stop_area_id"]
	deps, err := h.api.DeparturesFor(r.Context(), stopAreaID, h.now())
	if err != nil && !errors.Is(err, departures.ErrEmptyResult) {
		logf(r, "error fetching departures for %s: %v", stopAreaID, err)
		writeJSON(w, r, statusFor(err), errorResponse{Error: departures.StatusMessage(err)})
		return
	}
	board := h.api.Board(departures.BoardState{
		Station:    departures.Station{ID: stopAreaID},
		Departures: deps,
		Filter:     r.URL.Query().Get("type"),
	})
	result := departuresResponse{
		StopAreaID: stopAreaID,
		Filter:     board.Filter,
		Total:      board.Total,
		Rows:       make([]rowJSON, 0, board.Shown),
		Message:    board.Message,
	}
	if board.FilteredOut() {
		result.Message = departures.FilteredOutMessage
	}
	for _, row := range board.MatchingRows() {
		result.Rows = append(result.Rows, rowJSON{
			Line:             row.LineText,
			Color:            row.LineColor,
			Mission:          row.Mission,
			Destination:      row.Destination,
			Time:             toTimeJSON(row.Time),
			Category:         string(row.Type.Category),
			Family:           row.Type.Family,
			Type:             row.Type.Text,
			VehicleJourneyID: row.VehicleJourneyID,
		})
	}
	writeJSON(w, r, http.StatusOK, result)
}

// journeyJSON is the same-origin proxy for vehicle journeys; the id travels as a query
// parameter so it is never re-encoded into a path.
func (h handlers) journeyJSON(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Aucun identifiant de trajet spécifié"})
		return
	}
	j, err := h.api.ResolveJourney(r.Context(), id)
	if err != nil {
		logf(r, "error resolving vehicle journey %s: %v", id, err)
		writeJSON(w, r, statusFor(err), errorResponse{Error: departures.StatusMessage(err)})
		return
	}
	trip := h.api.Trip(j, h.now())
	result := journeyResponse{
		ID:          j.ID,
		RequestedID: j.RequestedID,
		Name:        j.Name,
		Code:        j.Code,
		Type:        j.Type.Text,
		Category:    string(j.Type.Category),
		Route:       trip.Route,
		CoachInfo:   trip.CoachInfo,
		Status:      trip.Badge.Text,
		NextStop:    trip.NextStop,
		Current:     trip.Progress.Current,
		Next:        trip.Progress.Next,
		Stops:       make([]stopJSON, 0, len(trip.Stops)),
	}
	for _, s := range trip.Stops {
		result.Stops = append(result.Stops, stopJSON{
			Name:      s.StopName,
			Platform:  s.Platform,
			Arrival:   toTimeJSON(s.Arrival),
			Departure: toTimeJSON(s.Departure),
			Marker:    s.Marker,
		})
	}
	writeJSON(w, r, http.StatusOK, result)
}

func statusFor(err error) int {
	var notFound *departures.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logf(r, "error encoding response: %v", err)
	}
}
