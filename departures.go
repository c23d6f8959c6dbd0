package departures

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bluele/gcache"
)

// API is what the board and trip pages need from the transit data service.
type API interface {
	SearchStations(ctx context.Context, query string) ([]Station, error)
	DeparturesFor(ctx context.Context, stopAreaID string, now time.Time) ([]Departure, error)
	ResolveJourney(ctx context.Context, rawID string) (VehicleJourney, error)
	Board(state BoardState) Board
	Trip(j VehicleJourney, now time.Time) TripView
}

type Config struct {
	BaseURL         string
	Coverage        string
	Token           string
	Timeout         time.Duration
	DeparturesCount int
	TimeZone        string
	Policy          DelayPolicy
	Brands          BrandTable
	// Client overrides the HTTP client built from Timeout.
	Client Doer
}

// Navitia implements API against a Navitia compatible REST service.
type Navitia struct {
	fetcher         *navitiaFetcher
	civil           *civilTimeConverter
	stations        gcache.Cache
	departuresCount int
	reconciler      Reconciler
	classifier      *Classifier
}

var _ API = (*Navitia)(nil)

func New(cfg Config) (*Navitia, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Coverage == "" {
		cfg.Coverage = DefaultCoverage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.DeparturesCount <= 0 {
		cfg.DeparturesCount = 200
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = "Europe/Paris"
	}
	if cfg.Brands.Categories == nil {
		cfg.Brands = DefaultBrandTable()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	civil, err := newCivilTimeConverter(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("problem loading time zone %s: %w", cfg.TimeZone, err)
	}
	return &Navitia{
		fetcher:         newNavitiaFetcher(client, cfg.BaseURL, cfg.Coverage, cfg.Token),
		civil:           civil,
		stations:        gcache.New(1000).LRU().Expiration(10 * time.Minute).Build(),
		departuresCount: cfg.DeparturesCount,
		reconciler:      Reconciler{Policy: cfg.Policy},
		classifier:      NewClassifier(cfg.Brands),
	}, nil
}

func (n *Navitia) Renderer() Renderer {
	return Renderer{Reconciler: n.reconciler, Classifier: n.classifier}
}

func (n *Navitia) Board(state BoardState) Board {
	return n.Renderer().Board(state)
}
