package departures

// VehicleJourney is one run of a train, resolved from the id carried by the board link.
type VehicleJourney struct {
	ID          string
	RequestedID string
	Name        string
	Code        string
	// CommercialMode is the raw product name as given by the API.
	CommercialMode string
	Fields         TrainFields
	Type           Classification
	CoachCount     string
	Stops          []StopTime
}

// StopTime is a call at one stop. Arrival and Departure are reconciled with the same rule
// as the departure board rows.
type StopTime struct {
	StopName           string
	Platform           string
	ScheduledArrival   Stamp
	ScheduledDeparture Stamp
	ObservedArrival    Stamp
	ObservedDeparture  Stamp
	Canceled           bool
	Arrival            Reconciliation
	Departure          Reconciliation
}

// progressTime is the displayed departure, or the displayed arrival at a terminus, so
// progress agrees with the times on the page.
func (s StopTime) progressTime() (int, bool) {
	if m, ok := s.Departure.ShownMinutes(); ok {
		return m, true
	}
	return s.Arrival.ShownMinutes()
}

func (n *Navitia) stopsFromSchedule(rows []navitiaScheduleRow) []StopTime {
	result := make([]StopTime, 0, len(rows))
	for _, row := range rows {
		if row.StopPoint == nil || len(row.DateTimes) == 0 {
			continue
		}
		dt := row.DateTimes[0]
		platform := ""
		if dt.StopPoint != nil {
			platform = dt.StopPoint.PlatformCode
		}
		if platform == "" {
			platform = row.StopPoint.PlatformCode
		}
		scheduledArrival := ParseStamp(dt.BaseArrivalDateTime)
		scheduledDeparture := ParseStamp(dt.BaseDepartureDateTime)
		observedArrival := ParseStamp(dt.ArrivalDateTime)
		observedDeparture := ParseStamp(dt.DepartureDateTime)
		if !scheduledDeparture.Valid() && !observedDeparture.Valid() {
			observedDeparture = ParseStamp(dt.DateTime)
		}
		canceled := removedFromService(dt.AdditionalInformations)
		result = append(result, StopTime{
			StopName:           firstNonEmpty(row.StopPoint.Name, row.StopPoint.Label, "Arrêt inconnu"),
			Platform:           firstNonEmpty(platform, "--"),
			ScheduledArrival:   scheduledArrival,
			ScheduledDeparture: scheduledDeparture,
			ObservedArrival:    observedArrival,
			ObservedDeparture:  observedDeparture,
			Canceled:           canceled,
			Arrival:            n.reconciler.Reconcile(scheduledArrival, observedArrival, dt.ArrivalDelay, canceled),
			Departure:          n.reconciler.Reconcile(scheduledDeparture, observedDeparture, dt.DepartureDelay, canceled),
		})
	}
	return result
}

// stopsFromJourney only knows the timetable, so every time is a scheduled one.
func (n *Navitia) stopsFromJourney(stopTimes []navitiaStopTime) []StopTime {
	result := make([]StopTime, 0, len(stopTimes))
	for _, st := range stopTimes {
		name, platform := "Arrêt inconnu", "--"
		if st.StopPoint != nil {
			name = firstNonEmpty(st.StopPoint.Name, st.StopPoint.Label, name)
			platform = firstNonEmpty(st.StopPoint.PlatformCode, platform)
		}
		arrival := ParseStamp(st.ArrivalTime)
		departure := ParseStamp(st.DepartureTime)
		result = append(result, StopTime{
			StopName:           name,
			Platform:           platform,
			ScheduledArrival:   arrival,
			ScheduledDeparture: departure,
			Canceled:           st.Skipped,
			Arrival:            n.reconciler.Reconcile(arrival, Stamp{}, nil, st.Skipped),
			Departure:          n.reconciler.Reconcile(departure, Stamp{}, nil, st.Skipped),
		})
	}
	return result
}
