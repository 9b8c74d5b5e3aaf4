// Simulation engine orchestrating validation, computation, and history
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"meteorsim/internal/config"
	"meteorsim/internal/history"
	"meteorsim/internal/impact"
	"meteorsim/internal/observability"
	"meteorsim/internal/remote"
	"meteorsim/internal/units"
)

// Outcome tags which computation path produced a result. The result shape is
// identical either way; the tag exists so callers and tests can tell the
// paths apart.
type Outcome string

const (
	OutcomeRemote Outcome = "remote"
	OutcomeLocal  Outcome = "local"
)

// RemoteComputer abstracts the external computation service.
type RemoteComputer interface {
	Compute(ctx context.Context, p impact.AsteroidParameters, loc impact.ImpactLocation) (*remote.Result, error)
}

// ValidationError reports rejected input. It carries the full report so
// callers can surface per-field messages.
type ValidationError struct {
	Report impact.Report
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Report.Errors, "; ")
}

// ComputationError reports that both the remote and local paths failed.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return "computation failed: " + e.Reason
}

// Engine owns the validator, calculator, history, and collaborators behind a
// single injectable object. Callers hold a reference; there is no ambient
// global state.
type Engine struct {
	effects impact.EffectsConfig
	remote  RemoteComputer
	timeout time.Duration
	store   *history.Store
	writer  ResultWriter
	metrics *observability.Metrics
	clock   clockwork.Clock
	logger  *slog.Logger
}

// New builds an engine from config. remoteClient may be nil to force local
// computation; writer may be nil to skip result emission.
func New(cfg *config.SimulationConfig, remoteClient RemoteComputer, writer ResultWriter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		effects: cfg.Densities,
		remote:  remoteClient,
		timeout: cfg.RemoteTimeout(),
		store:   history.NewStore(cfg.HistoryCapacity),
		writer:  writer,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

// SetWriter replaces the result writer, for callers that assemble the
// fan-out after constructing the engine.
func (e *Engine) SetWriter(w ResultWriter) {
	e.writer = w
}

// SetMetrics attaches Prometheus instruments.
func (e *Engine) SetMetrics(m *observability.Metrics) {
	e.metrics = m
}

// SetClock swaps the time source; tests freeze time with a fake clock.
func (e *Engine) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	e.clock = c
}

// Run validates params, computes the impact (remote first when configured,
// local otherwise), appends exactly one history entry on success, and
// returns the result with its outcome tag. Rejections and double failures
// never touch history.
func (e *Engine) Run(ctx context.Context, params impact.AsteroidParameters, loc *impact.ImpactLocation) (impact.SimulationResult, Outcome, error) {
	start := e.clock.Now()

	report := impact.Validate(params)
	for _, w := range report.Warnings {
		e.logger.Warn("parameter warning", "detail", w)
	}
	if !report.OK {
		if e.metrics != nil {
			e.metrics.RejectedTotal.Inc()
		}
		return impact.SimulationResult{}, "", &ValidationError{Report: report}
	}

	location := e.pickLocation(loc)

	var (
		result  impact.SimulationResult
		outcome Outcome
	)
	if e.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		remoteResult, err := e.remote.Compute(rctx, params, location)
		cancel()
		if err != nil {
			e.logger.Info("remote computation unavailable, falling back to local", "err", err)
		} else if completed := e.completeRemote(remoteResult, params, location); !resultFinite(completed) {
			e.logger.Warn("remote result carries non-finite values, falling back to local", "id", remoteResult.ID)
		} else {
			result = completed
			outcome = OutcomeRemote
		}
	}
	if outcome == "" {
		local, err := e.computeLocal(params, location)
		if err != nil {
			if e.metrics != nil {
				e.metrics.FailuresTotal.Inc()
			}
			return impact.SimulationResult{}, "", err
		}
		result = local
		outcome = OutcomeLocal
	}

	e.store.Append(history.Entry{ID: result.ID, Params: params, Result: result})
	if e.writer != nil {
		if err := e.writer.WriteResult(result); err != nil {
			e.logger.Error("result write failed", "id", result.ID, "err", err)
		}
	}
	if e.metrics != nil {
		e.metrics.RunsTotal.WithLabelValues(string(outcome)).Inc()
		e.metrics.HistorySize.Set(float64(e.store.Len()))
		e.metrics.RunDuration.Observe(e.clock.Since(start).Seconds())
	}
	e.logger.Info("run completed", "id", result.ID, "outcome", outcome, "megatons", result.EnergyMegatons)
	return result, outcome, nil
}

// History returns the retained runs, newest first.
func (e *Engine) History() []history.Entry {
	return e.store.All()
}

// LoadRun copies out a retained run by id.
func (e *Engine) LoadRun(id string) (history.Entry, bool) {
	return e.store.Load(id)
}

// ClearHistory empties the run history.
func (e *Engine) ClearHistory() {
	e.store.Clear()
	if e.metrics != nil {
		e.metrics.HistorySize.Set(0)
	}
}

// pickLocation uses the caller's location or generates a uniform random
// placeholder when none is supplied.
func (e *Engine) pickLocation(loc *impact.ImpactLocation) impact.ImpactLocation {
	if loc != nil {
		return *loc
	}
	return impact.ImpactLocation{
		Lat: rand.Float64()*180 - 90,
		Lon: rand.Float64()*360 - 180,
	}
}

// computeLocal derives the full result from the closed-form models.
func (e *Engine) computeLocal(params impact.AsteroidParameters, location impact.ImpactLocation) (impact.SimulationResult, error) {
	mass, joules, megatons, ok := impact.Energy(params)
	if !ok {
		return impact.SimulationResult{}, &ComputationError{Reason: fmt.Sprintf("no density for composition %q", params.Composition)}
	}
	crater, fireball, shockwave, windBlast, earthquake := impact.Compute(joules, megatons, params.AngleDeg, e.effects)
	result := impact.SimulationResult{
		ID:             uuid.New().String(),
		Timestamp:      e.clock.Now().UTC(),
		MassKg:         mass,
		EnergyJoules:   joules,
		EnergyMegatons: megatons,
		Crater:         crater,
		Fireball:       fireball,
		Shockwave:      shockwave,
		WindBlast:      windBlast,
		Earthquake:     earthquake,
		Location:       location,
	}
	if !resultFinite(result) {
		return impact.SimulationResult{}, &ComputationError{Reason: "non-finite value in computed result"}
	}
	return result, nil
}

// completeRemote fills the full result shape around the subset the remote
// service returns. Remote id, timestamp, energy, mass, crater diameter, and
// location are kept verbatim; the remaining effect fields are derived
// locally from the remote energy so both paths agree on shape and values.
func (e *Engine) completeRemote(r *remote.Result, params impact.AsteroidParameters, location impact.ImpactLocation) impact.SimulationResult {
	megatons := r.EnergyMegatons
	if megatons <= 0 {
		megatons = units.Megatons(r.EnergyJoules)
	}
	crater, fireball, shockwave, windBlast, earthquake := impact.Compute(r.EnergyJoules, megatons, params.AngleDeg, e.effects)
	if r.CraterDiameterKm > 0 {
		crater = impact.CraterFromDiameter(r.CraterDiameterKm*units.MetersPerKilometer, e.effects)
	}

	result := impact.SimulationResult{
		ID:             r.ID,
		Timestamp:      r.Timestamp,
		MassKg:         r.MassKg,
		EnergyJoules:   r.EnergyJoules,
		EnergyMegatons: megatons,
		Crater:         crater,
		Fireball:       fireball,
		Shockwave:      shockwave,
		WindBlast:      windBlast,
		Earthquake:     earthquake,
		Location:       location,
	}
	if r.Location != nil {
		result.Location = *r.Location
	}
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = e.clock.Now().UTC()
	}
	if result.MassKg == 0 {
		if mass, _, _, ok := impact.Energy(params); ok {
			result.MassKg = mass
		}
	}
	return result
}

// resultFinite reports whether every magnitude in r is a finite number. A
// NaN or Inf in history is always a defect, so this gate runs before any
// append.
func resultFinite(r impact.SimulationResult) bool {
	values := []float64{
		r.MassKg, r.EnergyJoules, r.EnergyMegatons,
		r.Crater.DiameterM, r.Crater.DepthM, r.Crater.VolumeM3, r.Crater.Casualties,
		r.Fireball.RadiusKm, r.Fireball.TreeIgnitionKm, r.Fireball.Casualties,
		r.Shockwave.Decibels, r.Shockwave.HomeCollapseKm, r.Shockwave.Casualties,
		r.WindBlast.PeakSpeedMps, r.WindBlast.TreesDownKm, r.WindBlast.Casualties,
		r.Earthquake.Magnitude, r.Earthquake.FeltRadiusKm, r.Earthquake.Casualties,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
