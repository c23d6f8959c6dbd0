package departures

const DefaultBaseURL = "https://api.sncf.com/v1"
const DefaultCoverage = "sncf"

const PlacesAPI = "%s/coverage/%s/places"
const DeparturesAPI = "%s/coverage/%s/stop_areas/%s/departures"
const VehicleJourneyAPI = "%s/coverage/%s/vehicle_journeys/%s"
const RouteSchedulesAPI = "%s/coverage/%s/vehicle_journeys/%s/route_schedules"

// RealTimeDelimiter marks the start of the real-time session suffix of a vehicle journey id.
const RealTimeDelimiter = ":RealTime:"
