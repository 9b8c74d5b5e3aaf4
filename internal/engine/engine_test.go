package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"meteorsim/internal/config"
	"meteorsim/internal/impact"
	"meteorsim/internal/remote"
	"meteorsim/internal/units"
)

// MockResultWriter collects results for validation
type MockResultWriter struct {
	Results []impact.SimulationResult
}

func (w *MockResultWriter) WriteResult(r impact.SimulationResult) error {
	w.Results = append(w.Results, r)
	return nil
}

// mockRemote lets tests script the remote path.
type mockRemote struct {
	fn    func(impact.AsteroidParameters, impact.ImpactLocation) (*remote.Result, error)
	calls int
}

func (m *mockRemote) Compute(_ context.Context, p impact.AsteroidParameters, loc impact.ImpactLocation) (*remote.Result, error) {
	m.calls++
	return m.fn(p, loc)
}

func validParams() impact.AsteroidParameters {
	return impact.AsteroidParameters{DiameterM: 100, VelocityKmps: 20, AngleDeg: 45, Composition: units.CompositionIron}
}

func TestRun_LocalComputation(t *testing.T) {
	writer := &MockResultWriter{}
	e := New(config.Default(), nil, writer, nil)

	loc := impact.ImpactLocation{Lat: 48.2, Lon: 16.4, Name: "Vienna"}
	result, outcome, err := e.Run(context.Background(), validParams(), &loc)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeLocal {
		t.Errorf("Expected local outcome without a remote client, got %s", outcome)
	}
	if result.ID == "" {
		t.Error("Result must carry a generated id")
	}
	if result.EnergyMegatons < 190 || result.EnergyMegatons > 200 {
		t.Errorf("Expected roughly 195 MT for the iron reference case, got %g", result.EnergyMegatons)
	}
	if result.Location != loc {
		t.Errorf("Expected caller location to be kept, got %+v", result.Location)
	}
	if len(writer.Results) != 1 {
		t.Fatalf("Expected 1 written result, got %d", len(writer.Results))
	}
	if got := e.History(); len(got) != 1 || got[0].ID != result.ID {
		t.Errorf("Expected exactly one history entry for the run, got %+v", got)
	}
}

func TestRun_RemoteOutcome(t *testing.T) {
	rc := &mockRemote{fn: func(p impact.AsteroidParameters, loc impact.ImpactLocation) (*remote.Result, error) {
		return &remote.Result{
			ID:               "remote-1",
			EnergyJoules:     8.168e17,
			EnergyMegatons:   195.2,
			CraterDiameterKm: 1.5,
			MassKg:           4.084e9,
		}, nil
	}}
	e := New(config.Default(), rc, nil, nil)

	result, outcome, err := e.Run(context.Background(), validParams(), &impact.ImpactLocation{Lat: 1, Lon: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeRemote {
		t.Errorf("Expected remote outcome, got %s", outcome)
	}
	if rc.calls != 1 {
		t.Errorf("Expected 1 remote call, got %d", rc.calls)
	}
	if result.ID != "remote-1" || result.EnergyMegatons != 195.2 {
		t.Errorf("Remote fields must be kept verbatim, got %+v", result)
	}
	if result.Crater.DiameterM != 1500 {
		t.Errorf("Expected remote crater diameter 1500m, got %g", result.Crater.DiameterM)
	}
	if result.Crater.DepthM == 0 || result.Fireball.RadiusKm == 0 {
		t.Error("Remote results must be completed with derived effect fields")
	}
}

func TestRun_FallbackTransparency(t *testing.T) {
	rc := &mockRemote{fn: func(impact.AsteroidParameters, impact.ImpactLocation) (*remote.Result, error) {
		return nil, errors.New("connection refused")
	}}
	e := New(config.Default(), rc, nil, nil)
	loc := impact.ImpactLocation{Lat: 10, Lon: 20}

	viaFallback, outcome, err := e.Run(context.Background(), validParams(), &loc)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeLocal {
		t.Errorf("Expected fallback to local, got %s", outcome)
	}

	local := New(config.Default(), nil, nil, nil)
	viaLocal, _, err := local.Run(context.Background(), validParams(), &loc)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Identical shape and values apart from id and timestamp.
	if viaFallback.EnergyJoules != viaLocal.EnergyJoules {
		t.Errorf("Energy mismatch: fallback %g, local %g", viaFallback.EnergyJoules, viaLocal.EnergyJoules)
	}
	if viaFallback.Crater != viaLocal.Crater {
		t.Errorf("Crater mismatch: fallback %+v, local %+v", viaFallback.Crater, viaLocal.Crater)
	}
	if viaFallback.Earthquake != viaLocal.Earthquake {
		t.Errorf("Earthquake mismatch: fallback %+v, local %+v", viaFallback.Earthquake, viaLocal.Earthquake)
	}
}

func TestRun_RejectionLeavesHistoryUntouched(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	bad := validParams()
	bad.AngleDeg = 120
	_, _, err := e.Run(context.Background(), bad, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(verr.Report.Errors) == 0 {
		t.Error("ValidationError must carry the report errors")
	}
	if len(e.History()) != 0 {
		t.Errorf("Rejected runs must not touch history, got %d entries", len(e.History()))
	}
}

func TestRun_NonFiniteResultRejected(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	// Large enough to overflow mass to +Inf; passes validation with a warning.
	huge := validParams()
	huge.DiameterM = 1e308
	_, _, err := e.Run(context.Background(), huge, nil)
	var cerr *ComputationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ComputationError for non-finite result, got %v", err)
	}
	if len(e.History()) != 0 {
		t.Error("Failed runs must not be persisted")
	}
}

func TestRun_TinyImpactorPersistsNonNegativeMagnitudes(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	// Small enough to drive the raw shockwave decibel term negative; passes
	// validation with only a size warning.
	tiny := impact.AsteroidParameters{DiameterM: 0.1, VelocityKmps: 1, AngleDeg: 45, Composition: units.CompositionStone}
	result, _, err := e.Run(context.Background(), tiny, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Shockwave.Decibels < 0 {
		t.Errorf("Decibels must not go negative, got %g", result.Shockwave.Decibels)
	}
	got := e.History()
	if len(got) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(got))
	}
	for name, v := range map[string]float64{
		"mass":      got[0].Result.MassKg,
		"megatons":  got[0].Result.EnergyMegatons,
		"decibels":  got[0].Result.Shockwave.Decibels,
		"wind":      got[0].Result.WindBlast.PeakSpeedMps,
		"magnitude": got[0].Result.Earthquake.Magnitude,
	} {
		if v < 0 {
			t.Errorf("Persisted %s must be non-negative, got %g", name, v)
		}
	}
}

func TestRun_NonFiniteRemoteResultFallsBackToLocal(t *testing.T) {
	rc := &mockRemote{fn: func(impact.AsteroidParameters, impact.ImpactLocation) (*remote.Result, error) {
		return &remote.Result{ID: "remote-nan", EnergyJoules: math.Inf(1)}, nil
	}}
	e := New(config.Default(), rc, nil, nil)

	result, outcome, err := e.Run(context.Background(), validParams(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome != OutcomeLocal {
		t.Errorf("Non-finite remote result must fall back to local, got %s", outcome)
	}
	if result.ID == "remote-nan" {
		t.Error("Remote fields must not survive the fallback")
	}
	got := e.History()
	if len(got) != 1 || math.IsInf(got[0].Result.EnergyJoules, 0) {
		t.Errorf("History must only carry the finite local result, got %+v", got)
	}
}

func TestRun_HistoryBounded(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	for i := 0; i < 15; i++ {
		p := validParams()
		p.DiameterM = 100 + float64(i)
		if _, _, err := e.Run(context.Background(), p, nil); err != nil {
			t.Fatalf("Run %d failed: %v", i, err)
		}
	}
	got := e.History()
	if len(got) != 10 {
		t.Fatalf("Expected history capped at 10, got %d", len(got))
	}
	if got[0].Params.DiameterM != 114 {
		t.Errorf("Expected newest run first, got diameter %g", got[0].Params.DiameterM)
	}
	if got[9].Params.DiameterM != 105 {
		t.Errorf("Expected oldest retained run last, got diameter %g", got[9].Params.DiameterM)
	}
}

func TestRun_RandomPlaceholderLocation(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	result, _, err := e.Run(context.Background(), validParams(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Location.Lat < -90 || result.Location.Lat > 90 {
		t.Errorf("Placeholder latitude out of range: %g", result.Location.Lat)
	}
	if result.Location.Lon < -180 || result.Location.Lon > 180 {
		t.Errorf("Placeholder longitude out of range: %g", result.Location.Lon)
	}
}

func TestLoadRun(t *testing.T) {
	e := New(config.Default(), nil, nil, nil)

	result, _, err := e.Run(context.Background(), validParams(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	entry, ok := e.LoadRun(result.ID)
	if !ok {
		t.Fatal("Expected run to be loadable by id")
	}
	if entry.Result.EnergyJoules != result.EnergyJoules {
		t.Errorf("Loaded entry differs: %+v", entry)
	}
	if _, ok := e.LoadRun("no-such-run"); ok {
		t.Error("Unknown id must not load")
	}

	e.ClearHistory()
	if len(e.History()) != 0 {
		t.Error("ClearHistory must empty the store")
	}
}

func TestRun_WriterErrorDoesNotFailRun(t *testing.T) {
	e := New(config.Default(), nil, failingWriter{}, nil)

	if _, _, err := e.Run(context.Background(), validParams(), nil); err != nil {
		t.Fatalf("Writer errors must not fail the run: %v", err)
	}
	if len(e.History()) != 1 {
		t.Error("Run must still be persisted when the writer fails")
	}
}

type failingWriter struct{}

func (failingWriter) WriteResult(impact.SimulationResult) error {
	return fmt.Errorf("sink unavailable")
}
