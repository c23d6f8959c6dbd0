package departures

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	FilterAll        = "all"
	defaultLineColor = "#0052a3"

	NoDeparturesMessage = "Aucun départ trouvé"
	FilteredOutMessage  = "Aucun départ après filtrage"
)

type FilterOption struct {
	Value string
	Text  string
}

// FilterOptions lists the product filters offered on the board; values are categories or
// category families.
var FilterOptions = []FilterOption{
	{Value: FilterAll, Text: "Tous les trains"},
	{Value: "ter", Text: "TER"},
	{Value: "tgv", Text: "TGV (INOUI, OUIGO, Lyria)"},
	{Value: "ouigo", Text: "OUIGO"},
	{Value: "intercites", Text: "Intercités"},
	{Value: "suburban", Text: "Transilien / RER"},
	{Value: "international", Text: "Eurostar / DB-SNCF"},
	{Value: "other", Text: "Autres"},
}

// BoardState is everything the board page is rendered from.
type BoardState struct {
	Station    Station
	Departures []Departure
	Filter     string
}

// Board keeps a row for every departure so the filter can be changed in the browser
// without a new request. Rows outside the filter have Matches unset.
type Board struct {
	Station Station
	Filter  string
	Total   int
	Shown   int
	Rows    []BoardRow
	Message string
}

type BoardRow struct {
	LineText         string
	LineColor        string
	Mission          string
	Destination      string
	ShortDestination string
	Time             Reconciliation
	Type             Classification
	VehicleJourneyID string
	Matches          bool
	Even             bool
}

func (r BoardRow) Clickable() bool {
	return r.VehicleJourneyID != ""
}

// TripURL carries the journey id as a bare query key.
func (r BoardRow) TripURL() string {
	if r.VehicleJourneyID == "" {
		return ""
	}
	return "/trip?" + url.QueryEscape(r.VehicleJourneyID)
}

func (r BoardRow) RowClass() string {
	if r.Even {
		return "train-row row-light"
	}
	return "train-row row-dark"
}

// Renderer turns fetched data into page models. It holds no state of its own.
type Renderer struct {
	Reconciler Reconciler
	Classifier *Classifier
}

func (rd Renderer) Board(state BoardState) Board {
	filter := strings.TrimSpace(state.Filter)
	if filter == "" {
		filter = FilterAll
	}
	result := Board{
		Station: state.Station,
		Filter:  filter,
		Total:   len(state.Departures),
	}
	if len(state.Departures) == 0 {
		result.Message = NoDeparturesMessage
		return result
	}
	result.Rows = make([]BoardRow, 0, len(state.Departures))
	for _, d := range state.Departures {
		row := rd.row(d)
		if matchesFilter(filter, row.Type, d.Fields) {
			row.Matches = true
			row.Even = result.Shown%2 == 0
			result.Shown++
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// FilteredOut reports departures that exist but none of which pass the filter.
func (b Board) FilteredOut() bool {
	return b.Total > 0 && b.Shown == 0
}

// MatchingRows are the rows passing the filter, in board order.
func (b Board) MatchingRows() []BoardRow {
	result := make([]BoardRow, 0, b.Shown)
	for _, r := range b.Rows {
		if r.Matches {
			result = append(result, r)
		}
	}
	return result
}

func (rd Renderer) row(d Departure) BoardRow {
	lineText := d.LineCode
	if lineText == "" {
		lineText = firstNonEmpty(d.Fields.CommercialMode, "—")
	}
	destination := d.Destination()
	return BoardRow{
		LineText:         lineText,
		LineColor:        lineColor(d.Color),
		Mission:          d.Mission(),
		Destination:      destination,
		ShortDestination: shortDestination(destination),
		Time:             rd.Reconciler.Reconcile(d.Scheduled, d.Observed, d.DelaySeconds, d.Canceled),
		Type:             rd.Classifier.Classify(d.Fields),
		VehicleJourneyID: d.VehicleJourneyID,
	}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$|^[0-9A-Fa-f]{3}$`)

func lineColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if !hexColor.MatchString(c) {
		return defaultLineColor
	}
	return "#" + c
}

var parenthesised = regexp.MustCompile(`\s*\([^)]*\)`)

// shortDestination drops parenthesised qualifiers for narrow screens.
func shortDestination(d string) string {
	if !strings.Contains(d, "(") {
		return d
	}
	return strings.TrimSpace(parenthesised.ReplaceAllString(d, ""))
}

func matchesFilter(filter string, c Classification, fields TrainFields) bool {
	switch filter {
	case FilterAll:
		return true
	case string(c.Category), c.Family:
		return true
	}
	if isKnownFilter(filter) {
		return false
	}
	// free text: match the commercial mode like the API names it
	return strings.Contains(normalizeText(fields.CommercialMode), normalizeText(filter))
}

func isKnownFilter(filter string) bool {
	for _, o := range FilterOptions {
		if o.Value == filter {
			return true
		}
	}
	for _, c := range allCategories {
		if string(c) == filter {
			return true
		}
	}
	return false
}

func (b Board) Summary() string {
	if b.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d départ(s) sur %d", b.Shown, b.Total)
}
