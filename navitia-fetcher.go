package departures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Doer abstracts anything that can run an [http.Request], such as an [http.Client].
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type navitiaFetcher struct {
	c             Doer
	token         string
	placesURL     func() string
	departuresURL func(string) string
	journeyURL    func(string) string
	schedulesURL  func(string) string
}

func newNavitiaFetcher(c Doer, baseURL, coverage, token string) *navitiaFetcher {
	baseURL = strings.TrimRight(baseURL, "/")
	return &navitiaFetcher{
		c:     c,
		token: token,
		placesURL: func() string {
			return fmt.Sprintf(PlacesAPI, baseURL, coverage)
		},
		departuresURL: func(stopAreaID string) string {
			return fmt.Sprintf(DeparturesAPI, baseURL, coverage, url.PathEscape(stopAreaID))
		},
		journeyURL: func(id string) string {
			return fmt.Sprintf(VehicleJourneyAPI, baseURL, coverage, url.PathEscape(id))
		},
		schedulesURL: func(id string) string {
			return fmt.Sprintf(RouteSchedulesAPI, baseURL, coverage, url.PathEscape(id))
		},
	}
}

type navitiaErrorDocument struct {
	Error *struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// getJSON issues an authenticated GET and decodes a 2xx body into out.
func (nf *navitiaFetcher) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := endpoint
	if len(params) > 0 {
		u = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if nf.token != "" {
		req.SetBasicAuth(nf.token, "")
	}
	resp, err := nf.c.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: fmt.Errorf("problem reading response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(endpoint, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{URL: endpoint, Err: err}
	}
	return nil
}

func newHTTPError(endpoint string, statusCode int, body []byte) *HTTPError {
	result := &HTTPError{
		URL:        endpoint,
		StatusCode: statusCode,
		Body:       string(body),
	}
	doc := navitiaErrorDocument{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return result
	}
	if doc.Error != nil {
		result.APIErrorID = doc.Error.ID
		result.APIMessage = doc.Error.Message
	} else {
		result.APIMessage = doc.Message
	}
	return result
}
