// NASA NEO feed client with persisted caching
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"meteorsim/internal/cache"
	"meteorsim/internal/impact"
	"meteorsim/internal/units"
)

// DefaultBaseURL is the public NEO REST endpoint.
const DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

// CatalogEntry is one near-Earth object mapped out of the feed's native
// schema. Diameter is the midpoint of the feed's min/max estimate.
type CatalogEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DiameterM      float64 `json:"diameter_m"`
	VelocityKmps   float64 `json:"velocity_kmps"`
	MissDistanceKm float64 `json:"miss_distance_km"`
	Hazardous      bool    `json:"hazardous"`
	ApproachDate   string  `json:"approach_date"`
}

// Parameters maps the entry into engine input. The feed carries no material
// information, so the caller picks the composition assumption.
func (e CatalogEntry) Parameters(composition units.Composition, angleDeg float64) impact.AsteroidParameters {
	return impact.AsteroidParameters{
		DiameterM:    e.DiameterM,
		VelocityKmps: e.VelocityKmps,
		AngleDeg:     angleDeg,
		Composition:  composition,
	}
}

// Client fetches the NEO feed. Responses are cached in the persisted store;
// entries older than the staleness window are refetched.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Store
	logger     *slog.Logger
}

// NewClient creates a feed client. cacheStore may be nil to disable caching.
func NewClient(baseURL, apiKey string, cacheStore *cache.Store, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cacheStore,
		logger:     logger,
	}
}

// Feed returns catalog entries for the date range, largest first.
func (c *Client) Feed(ctx context.Context, startDate, endDate string) ([]CatalogEntry, error) {
	key := fmt.Sprintf("neo:feed:%s:%s", startDate, endDate)
	if c.cache != nil {
		var cached []CatalogEntry
		if ok, err := c.cache.Get(key, &cached); err == nil && ok {
			c.logger.Debug("neo feed cache hit", "key", key)
			return cached, nil
		}
	}

	params := url.Values{
		"start_date": {startDate},
		"end_date":   {endDate},
		"api_key":    {c.apiKey},
	}
	u := fmt.Sprintf("%s/feed?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neo feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("neo feed: status %d: %s", resp.StatusCode, body)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	entries := mapFeed(feed)
	if c.cache != nil {
		if err := c.cache.Put(key, entries); err != nil {
			c.logger.Warn("neo feed cache write failed", "err", err)
		}
	}
	return entries, nil
}

func mapFeed(feed feedResponse) []CatalogEntry {
	var entries []CatalogEntry
	for date, objects := range feed.NearEarthObjects {
		for _, o := range objects {
			e := CatalogEntry{
				ID:           o.ID,
				Name:         o.Name,
				Hazardous:    o.Hazardous,
				ApproachDate: date,
				DiameterM:    (o.EstimatedDiameter.Meters.Min + o.EstimatedDiameter.Meters.Max) / 2,
			}
			if len(o.CloseApproachData) > 0 {
				ca := o.CloseApproachData[0]
				// The feed serializes numbers as strings.
				if v, err := strconv.ParseFloat(ca.RelativeVelocity.KilometersPerSecond, 64); err == nil {
					e.VelocityKmps = v
				}
				if d, err := strconv.ParseFloat(ca.MissDistance.Kilometers, 64); err == nil {
					e.MissDistanceKm = d
				}
			}
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DiameterM > entries[j].DiameterM })
	return entries
}

// Native feed schema, trimmed to the fields this client reads.

type feedResponse struct {
	ElementCount     int                  `json:"element_count"`
	NearEarthObjects map[string][]neoItem `json:"near_earth_objects"`
}

type neoItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Hazardous         bool   `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	CloseApproachData []struct {
		Date             string `json:"close_approach_date"`
		RelativeVelocity struct {
			KilometersPerSecond string `json:"kilometers_per_second"`
		} `json:"relative_velocity"`
		MissDistance struct {
			Kilometers string `json:"kilometers"`
		} `json:"miss_distance"`
	} `json:"close_approach_data"`
}
