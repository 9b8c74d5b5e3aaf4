// HTTP client for the external impact computation service
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"meteorsim/internal/impact"
)

// Result is the subset of the result shape the remote service returns, plus
// any vendor fields it sends that this client does not model. Unknown fields
// ride along untouched in Extra.
type Result struct {
	ID               string
	Timestamp        time.Time
	MassKg           float64
	EnergyJoules     float64
	EnergyMegatons   float64
	CraterDiameterKm float64
	Location         *impact.ImpactLocation
	Extra            map[string]json.RawMessage
}

// Client posts asteroid parameters to the remote computation endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a remote computation client. The timeout bounds the
// whole request; callers may tighten it further per call via ctx.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// request mirrors the parameter shape the service accepts.
type request struct {
	Diameter  float64 `json:"diameter"`
	Density   float64 `json:"density"`
	Velocity  float64 `json:"velocity"`
	Angle     float64 `json:"angle"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Known response fields. Everything else lands in Extra.
var knownFields = map[string]bool{
	"id":                           true,
	"impact_energy_joules":         true,
	"impact_energy_megatons":       true,
	"estimated_crater_diameter_km": true,
	"mass_kg":                      true,
	"simulation_timestamp":         true,
	"impact_location":              true,
}

// Compute submits p and loc to the remote service and decodes its result.
func (c *Client) Compute(ctx context.Context, p impact.AsteroidParameters, loc impact.ImpactLocation) (*Result, error) {
	density, ok := p.Composition.Density()
	if !ok {
		return nil, fmt.Errorf("composition %q has no density", p.Composition)
	}
	body, err := json.Marshal(request{
		Diameter:  p.DiameterM,
		Density:   density,
		Velocity:  p.VelocityKmps,
		Angle:     p.AngleDeg,
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote compute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("remote compute: status %d: %s", resp.StatusCode, payload)
	}

	raw := map[string]json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parseResult(raw)
}

func parseResult(raw map[string]json.RawMessage) (*Result, error) {
	r := &Result{Extra: map[string]json.RawMessage{}}
	for key, val := range raw {
		if !knownFields[key] {
			r.Extra[key] = val
		}
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &r.ID); err != nil {
			return nil, fmt.Errorf("field id: %w", err)
		}
	}
	if v, ok := raw["impact_energy_joules"]; ok {
		if err := json.Unmarshal(v, &r.EnergyJoules); err != nil {
			return nil, fmt.Errorf("field impact_energy_joules: %w", err)
		}
	}
	if v, ok := raw["impact_energy_megatons"]; ok {
		if err := json.Unmarshal(v, &r.EnergyMegatons); err != nil {
			return nil, fmt.Errorf("field impact_energy_megatons: %w", err)
		}
	}
	if v, ok := raw["estimated_crater_diameter_km"]; ok {
		if err := json.Unmarshal(v, &r.CraterDiameterKm); err != nil {
			return nil, fmt.Errorf("field estimated_crater_diameter_km: %w", err)
		}
	}
	if v, ok := raw["mass_kg"]; ok {
		if err := json.Unmarshal(v, &r.MassKg); err != nil {
			return nil, fmt.Errorf("field mass_kg: %w", err)
		}
	}
	if v, ok := raw["simulation_timestamp"]; ok {
		var ts string
		if err := json.Unmarshal(v, &ts); err != nil {
			return nil, fmt.Errorf("field simulation_timestamp: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("field simulation_timestamp: %w", err)
		}
		r.Timestamp = parsed
	}
	if v, ok := raw["impact_location"]; ok {
		var loc impact.ImpactLocation
		if err := json.Unmarshal(v, &loc); err != nil {
			return nil, fmt.Errorf("field impact_location: %w", err)
		}
		r.Location = &loc
	}
	if r.EnergyJoules <= 0 {
		return nil, fmt.Errorf("remote compute: missing or non-positive energy")
	}
	return r, nil
}
