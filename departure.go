package departures

// Departure is one upcoming train event at a station, as returned by the API. It is
// replaced wholesale on every fetch.
type Departure struct {
	LineCode         string
	Headsign         string
	TripShortName    string
	Name             string
	Label            string
	Direction        string
	Terminus         string
	Color            string
	Fields           TrainFields
	Canceled         bool
	Scheduled        Stamp
	Observed         Stamp
	DelaySeconds     *int
	VehicleJourneyID string
}

// Mission is the most specific name the API gives for this run.
func (d Departure) Mission() string {
	return firstNonEmpty(d.Headsign, d.LineCode, d.TripShortName, d.Name, d.Label, "—")
}

func (d Departure) Destination() string {
	return firstNonEmpty(d.Direction, d.Terminus, "—")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
