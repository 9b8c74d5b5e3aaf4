package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meteorsim/internal/impact"
	"meteorsim/internal/units"
)

func testParams() impact.AsteroidParameters {
	return impact.AsteroidParameters{DiameterM: 100, VelocityKmps: 20, AngleDeg: 45, Composition: units.CompositionIron}
}

func TestCompute_DecodesKnownAndVendorFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]float64
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
		}
		if req["density"] != 7800 {
			t.Errorf("Expected density 7800 in request, got %g", req["density"])
		}
		if req["velocity"] != 20 {
			t.Errorf("Expected km/s velocity passed through, got %g", req["velocity"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":                           "remote-1",
			"impact_energy_joules":         8.168e17,
			"impact_energy_megatons":       195.2,
			"estimated_crater_diameter_km": 1.1,
			"mass_kg":                      4.084e9,
			"simulation_timestamp":         "2026-08-25T12:00:00Z",
			"impact_location":              map[string]any{"lat": 10.0, "lon": 20.0},
			"vendor_confidence":            0.93,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, slog.Default())
	res, err := c.Compute(context.Background(), testParams(), impact.ImpactLocation{Lat: 10, Lon: 20})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if res.ID != "remote-1" || res.EnergyJoules != 8.168e17 {
		t.Errorf("Unexpected result: %+v", res)
	}
	if res.Location == nil || res.Location.Lat != 10 {
		t.Errorf("Expected location passthrough, got %+v", res.Location)
	}
	if _, ok := res.Extra["vendor_confidence"]; !ok {
		t.Error("Vendor fields must be retained in Extra")
	}
	if _, ok := res.Extra["id"]; ok {
		t.Error("Known fields must not leak into Extra")
	}
}

func TestCompute_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, slog.Default())
	if _, err := c.Compute(context.Background(), testParams(), impact.ImpactLocation{}); err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestCompute_TimeoutViaContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, slog.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Compute(ctx, testParams(), impact.ImpactLocation{}); err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestCompute_MissingEnergyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "remote-2"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, slog.Default())
	if _, err := c.Compute(context.Background(), testParams(), impact.ImpactLocation{}); err == nil {
		t.Fatal("Expected error when the response carries no energy")
	}
}
