package departures

import (
	"context"
	"log"
	"net/url"
	"slices"
	"strings"
)

type Station struct {
	ID    string
	Label string
}

const minStationQueryLength = 2

func (nf *navitiaFetcher) fetchStations(ctx context.Context, query string) ([]Station, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type[]", "stop_area")
	params.Set("count", "50")
	places := navitiaPlaces{}
	if err := nf.getJSON(ctx, nf.placesURL(), params, &places); err != nil {
		return nil, err
	}
	if places.Places == nil {
		return []Station{}, nil
	}
	result := make([]Station, 0, len(*places.Places))
	for _, p := range *places.Places {
		if p.ID == "" {
			continue
		}
		result = append(result, Station{
			ID:    p.ID,
			Label: p.label(),
		})
	}
	return result, nil
}

func (p navitiaPlace) label() string {
	if p.StopArea != nil && p.StopArea.Label != "" {
		return p.StopArea.Label
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// SearchStations resolves free text into candidate stop areas. Queries shorter than two
// characters return nothing without calling the API. The returned slice is the caller's
// own; the cache keeps a separate copy.
func (n *Navitia) SearchStations(ctx context.Context, query string) ([]Station, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minStationQueryLength {
		return []Station{}, nil
	}
	key := normalizeText(query)
	if cached, err := n.stations.Get(key); err == nil {
		return slices.Clone(cached.([]Station)), nil
	}
	stations, err := n.fetcher.fetchStations(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := n.stations.Set(key, slices.Clone(stations)); err != nil {
		log.Printf("unable to cache stations for %q: %v", query, err)
	}
	return stations, nil
}
