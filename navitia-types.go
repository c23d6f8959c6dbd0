package departures

type navitiaPlaces struct {
	Places *[]navitiaPlace `json:"places"`
}

type navitiaPlace struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmbeddedType string `json:"embedded_type"`
	StopArea     *struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Label string `json:"label"`
	} `json:"stop_area"`
}

type navitiaDepartures struct {
	Departures  *[]navitiaDeparture `json:"departures"`
	Disruptions []navitiaDisruption `json:"disruptions"`
}

type navitiaDeparture struct {
	DisplayInformations navitiaDisplayInformations `json:"display_informations"`
	StopDateTime        navitiaStopDateTime        `json:"stop_date_time"`
	VehicleJourney      *navitiaRef                `json:"vehicle_journey"`
	Terminus            *navitiaRef                `json:"terminus"`
	Links               []navitiaLink              `json:"links"`
}

type navitiaDisplayInformations struct {
	Code           string        `json:"code"`
	Headsign       string        `json:"headsign"`
	TripShortName  string        `json:"trip_short_name"`
	Name           string        `json:"name"`
	Label          string        `json:"label"`
	Direction      string        `json:"direction"`
	Color          string        `json:"color"`
	CommercialMode string        `json:"commercial_mode"`
	PhysicalMode   string        `json:"physical_mode"`
	Network        string        `json:"network"`
	Links          []navitiaLink `json:"links"`
}

func (di navitiaDisplayInformations) trainFields() TrainFields {
	return TrainFields{
		CommercialMode: di.CommercialMode,
		PhysicalMode:   di.PhysicalMode,
		Network:        di.Network,
		LineCode:       di.Code,
		Label:          di.Label,
		Name:           di.Name,
	}
}

type navitiaStopDateTime struct {
	BaseDepartureDateTime  string   `json:"base_departure_date_time"`
	DepartureDateTime      string   `json:"departure_date_time"`
	DepartureDelay         *int     `json:"departure_delay"`
	AdditionalInformations []string `json:"additional_informations"`
	DataFreshness          string   `json:"data_freshness"`
}

type navitiaRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type navitiaLink struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Rel  string `json:"rel"`
}

type navitiaDisruption struct {
	ID           string `json:"id"`
	DisruptionID string `json:"disruption_id"`
	Severity     struct {
		Effect string `json:"effect"`
		Name   string `json:"name"`
	} `json:"severity"`
}

type navitiaNamed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type navitiaVehicleJourneys struct {
	VehicleJourneys *[]navitiaVehicleJourney `json:"vehicle_journeys"`
}

type navitiaVehicleJourney struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Headsign       string            `json:"headsign"`
	Code           string            `json:"code"`
	CommercialMode *navitiaNamed     `json:"commercial_mode"`
	Codes          []navitiaCode     `json:"codes"`
	StopTimes      []navitiaStopTime `json:"stop_times"`
}

type navitiaCode struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type navitiaStopTime struct {
	ArrivalTime   string            `json:"arrival_time"`
	DepartureTime string            `json:"departure_time"`
	Skipped       bool              `json:"skipped_stop"`
	StopPoint     *navitiaStopPoint `json:"stop_point"`
}

type navitiaStopPoint struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Label        string `json:"label"`
	PlatformCode string `json:"platform_code"`
}

type navitiaRouteSchedules struct {
	RouteSchedules []navitiaRouteSchedule `json:"route_schedules"`
}

type navitiaRouteSchedule struct {
	DisplayInformations navitiaDisplayInformations `json:"display_informations"`
	Table               struct {
		Rows []navitiaScheduleRow `json:"rows"`
	} `json:"table"`
	VehicleJourneys []struct {
		ID    string        `json:"id"`
		Codes []navitiaCode `json:"codes"`
	} `json:"vehicle_journeys"`
}

type navitiaScheduleRow struct {
	StopPoint *navitiaStopPoint        `json:"stop_point"`
	DateTimes []navitiaScheduleDateTime `json:"date_times"`
}

type navitiaScheduleDateTime struct {
	BaseArrivalDateTime    string            `json:"base_arrival_date_time"`
	BaseDepartureDateTime  string            `json:"base_departure_date_time"`
	ArrivalDateTime        string            `json:"arrival_date_time"`
	DepartureDateTime      string            `json:"departure_date_time"`
	DateTime               string            `json:"date_time"`
	ArrivalDelay           *int              `json:"arrival_delay"`
	DepartureDelay         *int              `json:"departure_delay"`
	AdditionalInformations []string          `json:"additional_informations"`
	StopPoint              *navitiaStopPoint `json:"stop_point"`
}

func coachCount(codes []navitiaCode) string {
	for _, c := range codes {
		if c.Type == "coach_count" && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// removedFromService reports the additional informations that mark a canceled stop.
func removedFromService(additional []string) bool {
	for _, v := range additional {
		switch v {
		case "deleted", "no_service", "deleted_for_detour":
			return true
		}
	}
	return false
}
