package departures

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journeyBody = `{"vehicle_journeys":[{
	"id":"vehicle_journey:OCE:SN886100",
	"name":"886100",
	"headsign":"886100",
	"commercial_mode":{"id":"commercial_mode:ter","name":"TER"},
	"codes":[{"type":"coach_count","value":"4"}],
	"stop_times":[
		{"departure_time":"080000","arrival_time":"080000","stop_point":{"name":"Lyon Part-Dieu","platform_code":"J"}},
		{"arrival_time":"085000","departure_time":"085200","stop_point":{"name":"Mâcon Ville"}},
		{"arrival_time":"093000","departure_time":"093000","skipped_stop":true,"stop_point":{"name":"Chalon-sur-Saône"}},
		{"arrival_time":"101500","departure_time":"101500","stop_point":{"name":"Dijon Ville"}}
	]
}]}`

const routeScheduleBody = `{"route_schedules":[{
	"display_informations":{"commercial_mode":"TER","network":"TER Bourgogne-Franche-Comté","name":"Lyon - Dijon"},
	"table":{"rows":[
		{"stop_point":{"name":"Lyon Part-Dieu","platform_code":"K"},
		 "date_times":[{"base_departure_date_time":"20240301T080000","departure_date_time":"20240301T080500","stop_point":{"platform_code":"J"}}]},
		{"stop_point":{"name":"Mâcon Ville"},
		 "date_times":[{"base_arrival_date_time":"20240301T085000","arrival_date_time":"20240301T085500",
		                "base_departure_date_time":"20240301T085200","departure_date_time":"20240301T085700"}]},
		{"stop_point":{"name":"Chalon-sur-Saône"},
		 "date_times":[{"base_arrival_date_time":"20240301T093000","base_departure_date_time":"20240301T093000",
		                "additional_informations":["no_service"]}]},
		{"stop_point":{"label":"Dijon Ville (Dijon)"},
		 "date_times":[{"base_arrival_date_time":"20240301T101500","arrival_delay":300}]},
		{"stop_point":{"name":"Ignored"},"date_times":[]}
	]}
}]}`

func TestResolveJourneyFallsBackToBaseIDOnce(t *testing.T) {
	n, fake := newTestNavitia(t, map[string]fakeResponse{})

	_, err := n.ResolveJourney(context.Background(), "ABC:RealTime:123")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ABC:RealTime:123", notFound.ID)
	assert.Equal(t, "ptref : Filters: Unable to find object", notFound.Message)
	assert.Equal(t, []string{
		"/coverage/sncf/vehicle_journeys/ABC:RealTime:123",
		"/coverage/sncf/vehicle_journeys/ABC",
	}, fake.paths())
	assert.Equal(t, "Trajet non trouvé : ptref : Filters: Unable to find object", StatusMessage(err))
}

func TestResolveJourneyWithoutDelimiterDoesNotRetry(t *testing.T) {
	n, fake := newTestNavitia(t, map[string]fakeResponse{})

	_, err := n.ResolveJourney(context.Background(), "vehicle_journey:OCE:SN1")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Len(t, fake.paths(), 1)
}

func TestResolveJourneyEmptyListIsUnknown(t *testing.T) {
	n, fake := newTestNavitia(t, map[string]fakeResponse{
		"/coverage/sncf/vehicle_journeys/X:RealTime:1": ok(`{"vehicle_journeys":[]}`),
		"/coverage/sncf/vehicle_journeys/X":            ok(`{"vehicle_journeys":[]}`),
	})
	_, err := n.ResolveJourney(context.Background(), "X:RealTime:1")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Len(t, fake.paths(), 2)
}

func TestResolveJourneyOtherErrorsPropagate(t *testing.T) {
	n, fake := newTestNavitia(t, map[string]fakeResponse{
		"/coverage/sncf/vehicle_journeys/X:RealTime:1": {status: http.StatusInternalServerError, body: "oops"},
	})
	_, err := n.ResolveJourney(context.Background(), "X:RealTime:1")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Len(t, fake.paths(), 1)
}

func TestResolveJourneyEmptyID(t *testing.T) {
	n, fake := newTestNavitia(t, nil)
	_, err := n.ResolveJourney(context.Background(), "  ")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Trajet non trouvé : identifiant de trajet manquant", StatusMessage(err))
	assert.Empty(t, fake.paths())
}

func TestResolveJourneyViaBaseIDWithRouteSchedule(t *testing.T) {
	n, fake := newTestNavitia(t, map[string]fakeResponse{
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100":                 ok(journeyBody),
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100/route_schedules": ok(routeScheduleBody),
	})

	j, err := n.ResolveJourney(context.Background(), "vehicle_journey:OCE:SN886100:RealTime:99")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100:RealTime:99",
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100",
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100/route_schedules",
	}, fake.paths())

	assert.Equal(t, "vehicle_journey:OCE:SN886100", j.ID)
	assert.Equal(t, "vehicle_journey:OCE:SN886100:RealTime:99", j.RequestedID)
	assert.Equal(t, "886100", j.Name)
	assert.Equal(t, "TER", j.CommercialMode)
	assert.Equal(t, "4", j.CoachCount)
	assert.Equal(t, CategoryTER, j.Type.Category)

	require.Len(t, j.Stops, 4)
	first := j.Stops[0]
	assert.Equal(t, "Lyon Part-Dieu", first.StopName)
	assert.Equal(t, "J", first.Platform)
	assert.Equal(t, TimeStatus{Kind: Delayed, Minutes: 5}, first.Departure.Status)

	macon := j.Stops[1]
	assert.Equal(t, "--", macon.Platform)
	assert.Equal(t, "08:55", macon.Arrival.Observed)
	assert.Equal(t, "08:57", macon.Departure.Observed)

	chalon := j.Stops[2]
	assert.True(t, chalon.Canceled)
	assert.Equal(t, Canceled, chalon.Departure.Status.Kind)

	dijon := j.Stops[3]
	assert.Equal(t, "Dijon Ville (Dijon)", dijon.StopName)
	assert.Equal(t, TimeStatus{Kind: Delayed, Minutes: 5}, dijon.Arrival.Status)
	assert.Equal(t, "10:20", dijon.Arrival.Observed)

	view := BuildTripView(j, 8*60+53)
	assert.Equal(t, "Lyon Part-Dieu → Dijon Ville (Dijon)", view.Route)
	assert.Equal(t, "Mâcon Ville", view.NextStop)
	assert.Equal(t, "4 voitures", view.CoachInfo)
	assert.Equal(t, "Retardé (+5 min)", view.Badge.Text)

	// Dijon is scheduled 10:15 and only carries a delay, so at 10:18 it is still ahead
	view = BuildTripView(j, 10*60+18)
	assert.Equal(t, Progress{Current: 2, Next: 3}, view.Progress)
	assert.Equal(t, "Dijon Ville (Dijon)", view.NextStop)
}

func TestResolveJourneyFallsBackToJourneyStopTimes(t *testing.T) {
	n, _ := newTestNavitia(t, map[string]fakeResponse{
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100":                 ok(journeyBody),
		"/coverage/sncf/vehicle_journeys/vehicle_journey:OCE:SN886100/route_schedules": ok(`{"route_schedules":[]}`),
	})

	j, err := n.ResolveJourney(context.Background(), "vehicle_journey:OCE:SN886100")
	require.NoError(t, err)
	assert.Equal(t, j.ID, j.RequestedID)
	require.Len(t, j.Stops, 4)
	assert.Equal(t, "J", j.Stops[0].Platform)
	assert.Equal(t, "--", j.Stops[1].Platform)
	assert.Equal(t, "08:52", j.Stops[1].Departure.Scheduled)
	assert.Equal(t, OnTime, j.Stops[1].Departure.Status.Kind)
	assert.True(t, j.Stops[2].Canceled)
	assert.Equal(t, "TER", j.Fields.CommercialMode)
	assert.Equal(t, CategoryTER, j.Type.Category)
}

func TestBaseJourneyID(t *testing.T) {
	id, ok := baseJourneyID("ABC:RealTime:123")
	assert.True(t, ok)
	assert.Equal(t, "ABC", id)

	id, ok = baseJourneyID("ABC")
	assert.False(t, ok)
	assert.Equal(t, "ABC", id)
}
