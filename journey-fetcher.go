package departures

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
)

// baseJourneyID strips the real-time session suffix. ok is false when there is none.
func baseJourneyID(rawID string) (string, bool) {
	idx := strings.Index(rawID, RealTimeDelimiter)
	if idx < 0 {
		return rawID, false
	}
	return rawID[:idx], true
}

func (nf *navitiaFetcher) fetchVehicleJourney(ctx context.Context, id string) (navitiaVehicleJourney, error) {
	endpoint := nf.journeyURL(id)
	wire := navitiaVehicleJourneys{}
	if err := nf.getJSON(ctx, endpoint, url.Values{"depth": []string{"2"}}, &wire); err != nil {
		return navitiaVehicleJourney{}, err
	}
	if wire.VehicleJourneys == nil {
		return navitiaVehicleJourney{}, &MalformedResponseError{URL: endpoint, Err: errors.New("no vehicle_journeys in response")}
	}
	if len(*wire.VehicleJourneys) == 0 {
		return navitiaVehicleJourney{}, &HTTPError{URL: endpoint, StatusCode: 404, APIErrorID: "unknown_object", APIMessage: "empty vehicle_journeys"}
	}
	return (*wire.VehicleJourneys)[0], nil
}

func (nf *navitiaFetcher) fetchRouteSchedule(ctx context.Context, id string) (navitiaRouteSchedule, error) {
	endpoint := nf.schedulesURL(id)
	wire := navitiaRouteSchedules{}
	if err := nf.getJSON(ctx, endpoint, url.Values{"count": []string{"100"}}, &wire); err != nil {
		return navitiaRouteSchedule{}, err
	}
	if len(wire.RouteSchedules) == 0 || len(wire.RouteSchedules[0].Table.Rows) == 0 {
		return navitiaRouteSchedule{}, ErrEmptyResult
	}
	return wire.RouteSchedules[0], nil
}

func isUnknownObject(err error) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.UnknownObject() || httpErr.StatusCode == 404
}

func apiMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.APIMessage != "" {
		return httpErr.APIMessage
	}
	return err.Error()
}

// resolveVehicleJourney fetches rawID as given and, when the API does not know a
// real-time decorated id, retries exactly once with the base id.
func (nf *navitiaFetcher) resolveVehicleJourney(ctx context.Context, rawID string) (navitiaVehicleJourney, string, error) {
	vj, err := nf.fetchVehicleJourney(ctx, rawID)
	if err == nil {
		return vj, rawID, nil
	}
	if !isUnknownObject(err) {
		return navitiaVehicleJourney{}, "", err
	}
	baseID, ok := baseJourneyID(rawID)
	if !ok {
		return navitiaVehicleJourney{}, "", &NotFoundError{ID: rawID, Message: apiMessage(err), Err: err}
	}
	log.Printf("vehicle journey %s unknown, retrying with %s", rawID, baseID)
	vj, err = nf.fetchVehicleJourney(ctx, baseID)
	if err != nil {
		return navitiaVehicleJourney{}, "", &NotFoundError{ID: rawID, Message: apiMessage(err), Err: err}
	}
	return vj, baseID, nil
}

// ResolveJourney loads a vehicle journey and its stop times. The stop times come from the
// route schedule when available, else from the journey's own timetable.
func (n *Navitia) ResolveJourney(ctx context.Context, rawID string) (VehicleJourney, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return VehicleJourney{}, &NotFoundError{Message: "identifiant de trajet manquant"}
	}
	vj, resolvedID, err := n.fetcher.resolveVehicleJourney(ctx, rawID)
	if err != nil {
		return VehicleJourney{}, err
	}
	result := VehicleJourney{
		ID:          resolvedID,
		RequestedID: rawID,
		Name:        firstNonEmpty(vj.Name, vj.Headsign),
		Code:        firstNonEmpty(vj.Code, vj.Headsign, vj.Name),
		CoachCount:  coachCount(vj.Codes),
	}
	if vj.CommercialMode != nil {
		result.CommercialMode = vj.CommercialMode.Name
	}

	rs, err := n.fetcher.fetchRouteSchedule(ctx, resolvedID)
	if err != nil {
		log.Printf("route schedule for %s unavailable, using journey stop times: %v", resolvedID, err)
		result.Stops = n.stopsFromJourney(vj.StopTimes)
	} else {
		result.Stops = n.stopsFromSchedule(rs.Table.Rows)
		if result.CommercialMode == "" {
			result.CommercialMode = rs.DisplayInformations.CommercialMode
		}
		if result.CoachCount == "" {
			for _, sj := range rs.VehicleJourneys {
				if c := coachCount(sj.Codes); c != "" {
					result.CoachCount = c
					break
				}
			}
		}
		result.Fields = rs.DisplayInformations.trainFields()
	}
	if result.Fields.CommercialMode == "" {
		result.Fields.CommercialMode = result.CommercialMode
	}
	if result.Fields.Name == "" {
		result.Fields.Name = result.Name
	}
	result.Type = n.classifier.Classify(result.Fields)
	return result, nil
}
