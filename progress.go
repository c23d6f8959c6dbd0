package departures

import (
	"fmt"
	"time"
)

// NoStop marks an absent index in a Progress.
const NoStop = -1

// Progress locates a train on its journey. Next is the first stop it has not left yet,
// Current the one before it.
type Progress struct {
	Current int
	Next    int
}

func (p Progress) Finished() bool {
	return p.Next == NoStop
}

// DeriveProgress compares the displayed stop times of day against nowMinutes (minutes
// since midnight). Dates are ignored: the journey is taken to run within a single
// service day.
func DeriveProgress(stops []StopTime, nowMinutes int) Progress {
	for i, s := range stops {
		t, ok := s.progressTime()
		if !ok || t < nowMinutes {
			continue
		}
		current := NoStop
		if i > 0 {
			current = i - 1
		}
		return Progress{Current: current, Next: i}
	}
	return Progress{Current: NoStop, Next: NoStop}
}

// TripView is the trip page model.
type TripView struct {
	Journey   VehicleJourney
	Route     string
	CoachInfo string
	Progress  Progress
	Badge     Badge
	NextStop  string
	Stops     []StopView
}

type Badge struct {
	Text  string
	Class string
}

type StopView struct {
	StopTime
	Marker  string
	IsFirst bool
	IsLast  bool
	IsNext  bool
}

// TimeLine is the schedule text of the stop: departure only at the origin, arrival only
// at the terminus.
func (sv StopView) TimeLine() string {
	switch {
	case sv.IsFirst:
		return "Départ: " + sv.Departure.Shown()
	case sv.IsLast:
		return "Arrivée: " + sv.Arrival.Shown()
	}
	return sv.Arrival.Shown() + " - " + sv.Departure.Shown()
}

// Statuses are the statuses shown under the stop, in the same order as TimeLine.
func (sv StopView) Statuses() []TimeStatus {
	switch {
	case sv.IsFirst:
		return []TimeStatus{sv.Departure.Status}
	case sv.IsLast:
		return []TimeStatus{sv.Arrival.Status}
	}
	return []TimeStatus{sv.Arrival.Status, sv.Departure.Status}
}

// Shown is the time a traveller should expect: the observed one when known.
func (r Reconciliation) Shown() string {
	if r.HasObserved {
		return r.Observed
	}
	return r.Scheduled
}

// Trip builds the trip page for journey j as seen at now.
func (n *Navitia) Trip(j VehicleJourney, now time.Time) TripView {
	return BuildTripView(j, n.civil.minutesSinceMidnight(now))
}

func BuildTripView(j VehicleJourney, nowMinutes int) TripView {
	progress := DeriveProgress(j.Stops, nowMinutes)
	result := TripView{
		Journey:   j,
		Progress:  progress,
		CoachInfo: "Info voitures non disponible",
		Badge:     journeyBadge(j.Stops, progress),
	}
	if j.CoachCount != "" {
		result.CoachInfo = j.CoachCount + " voitures"
	}
	if len(j.Stops) >= 2 {
		result.Route = fmt.Sprintf("%s → %s", j.Stops[0].StopName, j.Stops[len(j.Stops)-1].StopName)
	}
	switch {
	case !progress.Finished():
		result.NextStop = j.Stops[progress.Next].StopName
	case len(j.Stops) > 0:
		result.NextStop = "Terminus - " + j.Stops[len(j.Stops)-1].StopName
	}
	result.Stops = make([]StopView, 0, len(j.Stops))
	for i, s := range j.Stops {
		result.Stops = append(result.Stops, StopView{
			StopTime: s,
			Marker:   stopMarker(i, progress),
			IsFirst:  i == 0,
			IsLast:   i == len(j.Stops)-1,
			IsNext:   i == progress.Next,
		})
	}
	return result
}

func stopMarker(i int, p Progress) string {
	switch {
	case i == p.Current:
		return "current"
	case i == p.Next:
		return "next"
	case p.Finished() || i < p.Next:
		return "passed"
	}
	return "future"
}

func journeyBadge(stops []StopTime, p Progress) Badge {
	if len(stops) == 0 {
		return Badge{Text: "Information manquante", Class: "badge-unknown"}
	}
	if p.Finished() {
		return Badge{Text: "Terminé", Class: "badge-finished"}
	}
	status := stops[p.Next].Departure.Status
	if _, ok := stops[p.Next].Departure.ShownMinutes(); !ok {
		// the terminus has no departure
		status = stops[p.Next].Arrival.Status
	}
	switch status.Kind {
	case OnTime:
		return Badge{Text: "À l'heure", Class: "badge-on-time"}
	case Delayed:
		return Badge{Text: fmt.Sprintf("Retardé (+%d min)", status.Minutes), Class: "badge-delayed"}
	case Early:
		return Badge{Text: fmt.Sprintf("En avance (-%d min)", status.Minutes), Class: "badge-early"}
	case Canceled:
		return Badge{Text: "Supprimé", Class: "badge-canceled"}
	}
	return Badge{Text: "En circulation", Class: "badge-running"}
}
