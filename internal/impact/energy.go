package impact

import (
	"math"

	"meteorsim/internal/units"
)

// Mass returns the impactor mass in kg for a spherical body of the given
// diameter (meters) and density (kg/m³).
func Mass(diameterM, densityKgM3 float64) float64 {
	radius := diameterM / 2
	volume := (4.0 / 3.0) * math.Pi * radius * radius * radius
	return densityKgM3 * volume
}

// KineticEnergy returns E = ½mv² in Joules. velocityKmps is km/s; the
// conversion to m/s happens here and nowhere else upstream of the models.
func KineticEnergy(massKg, velocityKmps float64) float64 {
	v := units.MetersPerSecond(velocityKmps)
	return 0.5 * massKg * v * v
}

// Energy computes mass, energy in Joules, and megaton equivalent for p.
// ok is false when the composition has no known density.
func Energy(p AsteroidParameters) (massKg, joules, megatons float64, ok bool) {
	density, ok := p.Composition.Density()
	if !ok {
		return 0, 0, 0, false
	}
	massKg = Mass(p.DiameterM, density)
	joules = KineticEnergy(massKg, p.VelocityKmps)
	return massKg, joules, units.Megatons(joules), true
}
