package departures

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when the API answered correctly but with zero items.
var ErrEmptyResult = errors.New("empty result")

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("problem fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx answer. APIErrorID and APIMessage are filled in when the body
// carries the API's error document.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
	APIErrorID string
	APIMessage string
}

func (e *HTTPError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("%s: status %d: %s", e.URL, e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
}

// UnknownObject reports whether the API said the requested object does not exist.
func (e *HTTPError) UnknownObject() bool {
	return e.APIErrorID == "unknown_object"
}

// MalformedResponseError means the body could not be decoded or lacked the expected document.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("problem parsing response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned once the journey resolver has exhausted its fallback.
type NotFoundError struct {
	ID      string
	Message string
	Err     error
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("vehicle journey %s not found: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("vehicle journey %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// StatusMessage converts any fetch error into the text shown in place of the data.
func StatusMessage(err error) string {
	var (
		netErr      *NetworkError
		httpErr     *HTTPError
		malformed   *MalformedResponseError
		notFoundErr *NotFoundError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &notFoundErr):
		if notFoundErr.Message != "" {
			return "Trajet non trouvé : " + notFoundErr.Message
		}
		return "Trajet non trouvé"
	case errors.Is(err, ErrEmptyResult):
		return "Aucun départ trouvé"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Erreur API: %d", httpErr.StatusCode)
	case errors.As(err, &malformed):
		return "Réponse invalide du serveur"
	case errors.As(err, &netErr):
		return "Erreur de connexion"
	}
	return "Erreur inattendue"
}
