// Physical constants and the unit conversions shared by the impact models
package units

// Composition is a closed enumeration of impactor materials. Each value maps
// to a fixed bulk density; an unknown composition never resolves to a density.
type Composition string

const (
	CompositionIron         Composition = "iron"
	CompositionStone        Composition = "stone"
	CompositionIce          Composition = "ice"
	CompositionCarbonaceous Composition = "carbonaceous"
)

// densities holds bulk density in kg/m³ per composition.
var densities = map[Composition]float64{
	CompositionIron:         7800,
	CompositionStone:        3000,
	CompositionIce:          917,
	CompositionCarbonaceous: 2200,
}

// Density returns the bulk density for c in kg/m³. ok is false for unknown
// compositions.
func (c Composition) Density() (density float64, ok bool) {
	density, ok = densities[c]
	return density, ok
}

// Compositions lists every known composition in a stable order.
func Compositions() []Composition {
	return []Composition{
		CompositionIron,
		CompositionStone,
		CompositionIce,
		CompositionCarbonaceous,
	}
}

// JoulesPerMegaton is the energy of one megaton of TNT.
const JoulesPerMegaton = 4.184e15

// MetersPerKilometer converts km-based magnitudes to meters.
const MetersPerKilometer = 1000.0

// MetersPerSecond converts a velocity in km/s to m/s. This is the only place
// in the codebase where that conversion happens; all public velocity inputs
// are km/s.
func MetersPerSecond(velocityKmps float64) float64 {
	return velocityKmps * MetersPerKilometer
}

// Megatons converts energy in Joules to megatons of TNT. This is the only
// place in the codebase where that conversion happens.
func Megatons(energyJoules float64) float64 {
	return energyJoules / JoulesPerMegaton
}
