package departures

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"
)

func (nf *navitiaFetcher) fetchDepartures(ctx context.Context, stopAreaID, fromDateTime string, count int) ([]Departure, error) {
	params := url.Values{}
	params.Set("from_datetime", fromDateTime)
	params.Set("count", strconv.Itoa(count))
	params.Set("data_freshness", "realtime")
	endpoint := nf.departuresURL(stopAreaID)
	wire := navitiaDepartures{}
	if err := nf.getJSON(ctx, endpoint, params, &wire); err != nil {
		return nil, err
	}
	if wire.Departures == nil {
		return nil, &MalformedResponseError{URL: endpoint, Err: errors.New("no departures in response")}
	}
	if len(*wire.Departures) == 0 {
		return nil, ErrEmptyResult
	}
	noService := noServiceDisruptions(wire.Disruptions)
	result := make([]Departure, 0, len(*wire.Departures))
	for _, d := range *wire.Departures {
		result = append(result, d.toDeparture(noService))
	}
	return result, nil
}

func noServiceDisruptions(disruptions []navitiaDisruption) map[string]bool {
	result := make(map[string]bool)
	for _, d := range disruptions {
		if d.Severity.Effect != "NO_SERVICE" {
			continue
		}
		result[d.ID] = true
		if d.DisruptionID != "" {
			result[d.DisruptionID] = true
		}
	}
	return result
}

func (nd navitiaDeparture) toDeparture(noService map[string]bool) Departure {
	di := nd.DisplayInformations
	st := nd.StopDateTime
	return Departure{
		LineCode:         di.Code,
		Headsign:         di.Headsign,
		TripShortName:    di.TripShortName,
		Name:             di.Name,
		Label:            di.Label,
		Direction:        di.Direction,
		Terminus:         nd.terminusName(),
		Color:            di.Color,
		Fields:           di.trainFields(),
		Canceled:         removedFromService(st.AdditionalInformations) || nd.linksTo(noService),
		Scheduled:        ParseStamp(st.BaseDepartureDateTime),
		Observed:         ParseStamp(st.DepartureDateTime),
		DelaySeconds:     st.DepartureDelay,
		VehicleJourneyID: nd.vehicleJourneyID(),
	}
}

func (nd navitiaDeparture) terminusName() string {
	if nd.Terminus == nil {
		return ""
	}
	return nd.Terminus.Name
}

func (nd navitiaDeparture) vehicleJourneyID() string {
	if nd.VehicleJourney != nil && nd.VehicleJourney.ID != "" {
		return nd.VehicleJourney.ID
	}
	for _, l := range nd.Links {
		if l.Type == "vehicle_journey" && l.ID != "" {
			return l.ID
		}
	}
	return ""
}

func (nd navitiaDeparture) linksTo(disruptions map[string]bool) bool {
	if len(disruptions) == 0 {
		return false
	}
	for _, links := range [][]navitiaLink{nd.DisplayInformations.Links, nd.Links} {
		for _, l := range links {
			if l.Type == "disruption" && disruptions[l.ID] {
				return true
			}
		}
	}
	return false
}

// DeparturesFor fetches the next departures from a stop area as of now, expressed in the
// station's civil time.
func (n *Navitia) DeparturesFor(ctx context.Context, stopAreaID string, now time.Time) ([]Departure, error) {
	return n.fetcher.fetchDepartures(ctx, stopAreaID, n.civil.navitiaDateTime(now), n.departuresCount)
}
