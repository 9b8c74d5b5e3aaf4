package impact

import (
	"fmt"
)

// Plausibility bounds for incoming parameters. Velocities are km/s relative
// to Earth; the cosmic band covers bodies bound to the solar system.
const (
	maxPlausibleDiameterM = 1e5
	minVelocityKmps       = 1
	maxVelocityKmps       = 100000
	minCosmicVelocityKmps = 11
	maxCosmicVelocityKmps = 72
)

// Report is the outcome of validating asteroid parameters. Errors block a
// run; Warnings flag implausible but allowed values (historical
// extinction-scale presets exceed the sane diameter bound on purpose).
type Report struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate checks p for physical plausibility. It never mutates p.
func Validate(p AsteroidParameters) Report {
	var r Report

	if p.DiameterM <= 0 {
		r.Errors = append(r.Errors, fmt.Sprintf("diameter: must be positive, got %g m", p.DiameterM))
	} else if p.DiameterM > maxPlausibleDiameterM {
		r.Warnings = append(r.Warnings, fmt.Sprintf("diameter: %g m exceeds %g m, treating as extinction-scale scenario", p.DiameterM, float64(maxPlausibleDiameterM)))
	}

	if p.VelocityKmps < minVelocityKmps || p.VelocityKmps > maxVelocityKmps {
		r.Errors = append(r.Errors, fmt.Sprintf("velocity: must be within [%d, %d] km/s, got %g", minVelocityKmps, maxVelocityKmps, p.VelocityKmps))
	} else if p.VelocityKmps < minCosmicVelocityKmps || p.VelocityKmps > maxCosmicVelocityKmps {
		r.Warnings = append(r.Warnings, fmt.Sprintf("velocity: %g km/s is outside the Earth-relative cosmic band [%d, %d] km/s", p.VelocityKmps, minCosmicVelocityKmps, maxCosmicVelocityKmps))
	}

	if p.AngleDeg < 0 || p.AngleDeg > 90 {
		r.Errors = append(r.Errors, fmt.Sprintf("angle: must be within [0, 90] degrees, got %g", p.AngleDeg))
	}

	if _, ok := p.Composition.Density(); !ok {
		r.Errors = append(r.Errors, fmt.Sprintf("composition: unknown material %q", p.Composition))
	}

	r.OK = len(r.Errors) == 0
	return r
}
