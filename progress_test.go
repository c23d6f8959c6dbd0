package departures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledStop(name, arrival, departure string) StopTime {
	a, d := ParseStamp(arrival), ParseStamp(departure)
	return StopTime{
		StopName:           name,
		Platform:           "--",
		ScheduledArrival:   a,
		ScheduledDeparture: d,
		Arrival:            Reconcile(a, Stamp{}, nil, false),
		Departure:          Reconcile(d, Stamp{}, nil, false),
	}
}

func threeStops() []StopTime {
	return []StopTime{
		scheduledStop("Lyon Part-Dieu", "", "20240301T080000"),
		scheduledStop("Mâcon", "20240301T080800", "20240301T081000"),
		scheduledStop("Dijon", "20240301T082500", ""),
	}
}

func TestDeriveProgress(t *testing.T) {
	stops := threeStops()
	tests := []struct {
		now  int
		want Progress
	}{
		{7*60 + 50, Progress{Current: NoStop, Next: 0}},
		{8 * 60, Progress{Current: NoStop, Next: 0}},
		{8*60 + 1, Progress{Current: 0, Next: 1}},
		{8*60 + 12, Progress{Current: 1, Next: 2}},
		{8*60 + 25, Progress{Current: 1, Next: 2}},
		{8*60 + 30, Progress{Current: NoStop, Next: NoStop}},
	}
	for _, tc := range tests {
		got := DeriveProgress(stops, tc.now)
		assert.Equal(t, tc.want, got, "now=%s", formatClock(tc.now))
	}
}

func TestDeriveProgressPrefersObservedDeparture(t *testing.T) {
	stops := threeStops()
	stops[1].ObservedDeparture = ParseStamp("20240301T082000")
	stops[1].Departure = Reconcile(stops[1].ScheduledDeparture, stops[1].ObservedDeparture, nil, false)
	p := DeriveProgress(stops, 8*60+15)
	assert.Equal(t, Progress{Current: 0, Next: 1}, p)
}

func TestDeriveProgressFollowsSynthesizedDelay(t *testing.T) {
	origin := scheduledStop("Lyon Part-Dieu", "", "20240301T080000")
	terminus := ParseStamp("20240301T081000")
	last := StopTime{
		StopName:         "Mâcon Ville",
		ScheduledArrival: terminus,
		Arrival:          Reconcile(terminus, Stamp{}, seconds(600), false),
	}
	view := BuildTripView(VehicleJourney{Stops: []StopTime{origin, last}}, 8*60+15)

	assert.Equal(t, "Arrivée: 08:20", view.Stops[1].TimeLine())
	assert.Equal(t, Progress{Current: 0, Next: 1}, view.Progress)
	assert.Equal(t, "Mâcon Ville", view.NextStop)
	assert.Equal(t, "Retardé (+10 min)", view.Badge.Text)
}

func TestDeriveProgressUnderExplicitDelayPolicy(t *testing.T) {
	rc := Reconciler{Policy: ExplicitDelayFirst}
	sched := ParseStamp("20240301T081000")
	stops := threeStops()
	stops[1].ObservedDeparture = sched
	stops[1].Departure = rc.Reconcile(sched, sched, seconds(600), false)

	assert.Equal(t, "08:20", stops[1].Departure.Shown())
	assert.Equal(t, Progress{Current: 0, Next: 1}, DeriveProgress(stops, 8*60+15))

	stops[1].Departure = Reconciler{Policy: TimestampsFirst}.Reconcile(sched, sched, seconds(600), false)
	assert.Equal(t, Progress{Current: 1, Next: 2}, DeriveProgress(stops, 8*60+15))
}

func TestReconciliationShownMinutes(t *testing.T) {
	m, ok := Reconcile(ParseStamp("20240301T235500"), Stamp{}, seconds(600), false).ShownMinutes()
	assert.True(t, ok)
	assert.Equal(t, 5, m)

	m, ok = Reconcile(ParseStamp("20240301T081500"), Stamp{}, nil, true).ShownMinutes()
	assert.True(t, ok)
	assert.Equal(t, 8*60+15, m)

	_, ok = Reconcile(Stamp{}, Stamp{}, nil, false).ShownMinutes()
	assert.False(t, ok)
	_, ok = Reconciliation{}.ShownMinutes()
	assert.False(t, ok)
}

func TestDeriveProgressSkipsStopsWithoutTimes(t *testing.T) {
	stops := []StopTime{
		scheduledStop("A", "", "20240301T080000"),
		{StopName: "B"},
		scheduledStop("C", "20240301T090000", ""),
	}
	assert.Equal(t, Progress{Current: 1, Next: 2}, DeriveProgress(stops, 8*60+30))
	assert.True(t, DeriveProgress(nil, 0).Finished())
}

func TestBuildTripView(t *testing.T) {
	j := VehicleJourney{
		ID:         "vehicle_journey:OCE:SN886100",
		Name:       "886100",
		CoachCount: "8",
		Stops:      threeStops(),
	}
	view := BuildTripView(j, 8*60+12)

	assert.Equal(t, "Lyon Part-Dieu → Dijon", view.Route)
	assert.Equal(t, "8 voitures", view.CoachInfo)
	assert.Equal(t, "Dijon", view.NextStop)
	assert.Equal(t, Badge{Text: "À l'heure", Class: "badge-on-time"}, view.Badge)
	require.Len(t, view.Stops, 3)
	assert.Equal(t, []string{"passed", "current", "next"},
		[]string{view.Stops[0].Marker, view.Stops[1].Marker, view.Stops[2].Marker})
	assert.True(t, view.Stops[2].IsNext)

	assert.Equal(t, "Départ: 08:00", view.Stops[0].TimeLine())
	assert.Equal(t, "08:08 - 08:10", view.Stops[1].TimeLine())
	assert.Equal(t, "Arrivée: 08:25", view.Stops[2].TimeLine())
	assert.Len(t, view.Stops[1].Statuses(), 2)
	assert.Len(t, view.Stops[2].Statuses(), 1)
}

func TestBuildTripViewFinished(t *testing.T) {
	view := BuildTripView(VehicleJourney{Stops: threeStops()}, 23*60)
	assert.True(t, view.Progress.Finished())
	assert.Equal(t, "Terminus - Dijon", view.NextStop)
	assert.Equal(t, "Terminé", view.Badge.Text)
	assert.Equal(t, "Info voitures non disponible", view.CoachInfo)
	for _, s := range view.Stops {
		assert.Equal(t, "passed", s.Marker)
	}
}

func TestBuildTripViewBadges(t *testing.T) {
	stops := threeStops()
	sched := stops[1].ScheduledDeparture
	stops[1].ObservedDeparture = ParseStamp("20240301T081700")
	stops[1].Departure = Reconcile(sched, stops[1].ObservedDeparture, nil, false)
	view := BuildTripView(VehicleJourney{Stops: stops}, 8*60+5)
	assert.Equal(t, Badge{Text: "Retardé (+7 min)", Class: "badge-delayed"}, view.Badge)
	assert.Equal(t, "08:08 - 08:17", view.Stops[1].TimeLine())

	stops[1].Departure = Reconcile(sched, Stamp{}, nil, true)
	view = BuildTripView(VehicleJourney{Stops: stops}, 8*60+5)
	assert.Equal(t, "Supprimé", view.Badge.Text)

	view = BuildTripView(VehicleJourney{}, 8*60)
	assert.Equal(t, "Information manquante", view.Badge.Text)
	assert.Empty(t, view.Route)
	assert.Empty(t, view.NextStop)
}
