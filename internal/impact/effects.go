// Closed-form effect models deriving damage radii from impact energy
package impact

import (
	"math"

	"meteorsim/internal/units"
)

// Empirical scaling constants. These are order-of-magnitude fits, not
// validated physics; tier factors grow monotonically as severity drops.
const (
	craterDiameterScaleM = 400.0 // m per MT^0.25 at vertical entry
	craterDepthRatio     = 0.2

	fireballRadiusScaleKm = 0.5 // km per MT^0.4
	fireballThirdDegree   = 1.5
	fireballSecondDegree  = 2.2
	fireballClothing      = 3.0
	fireballTrees         = 3.6

	shockwaveBaseDb        = 180.0
	shockwaveLungKm        = 1.0 // km per MT^0.33 per tier
	shockwaveEardrumKm     = 1.8
	shockwaveBuildingKm    = 3.6
	shockwaveHomeKm        = 5.4

	windPeakSpeedScaleMps = 400.0 // m/s per MT^0.33 at the reference distance
	windReferenceDistKm   = 1.0
	windJupiterKm         = 0.8
	windLeveledKm         = 1.6
	windTornadoKm         = 2.8
	windTreesKm           = 4.6

	quakeMagnitudeCap   = 10.0
	quakeRadiusScaleKm  = 0.015
	quakeRadiusExponent = 0.45
)

// EffectsConfig carries the assumed population densities (persons/km²) used
// for exposure estimates. The numbers have no cited derivation, so they are
// configuration rather than constants baked into the models.
type EffectsConfig struct {
	CraterDensity     float64 `yaml:"crater"`
	FireballDensity   float64 `yaml:"fireball"`
	ShockwaveDensity  float64 `yaml:"shockwave"`
	WindBlastDensity  float64 `yaml:"wind_blast"`
	EarthquakeDensity float64 `yaml:"earthquake"`
}

// DefaultEffectsConfig returns the stock exposure densities.
func DefaultEffectsConfig() EffectsConfig {
	return EffectsConfig{
		CraterDensity:     3000,
		FireballDensity:   1000,
		ShockwaveDensity:  800,
		WindBlastDensity:  600,
		EarthquakeDensity: 200,
	}
}

// exposure estimates the population inside a disc of the given radius (km).
func exposure(radiusKm, densityPerKm2 float64) float64 {
	if radiusKm <= 0 || densityPerKm2 <= 0 {
		return 0
	}
	return math.Pi * radiusKm * radiusKm * densityPerKm2
}

// Crater models the excavated crater. Oblique entries are attenuated by
// sin(angle); a grazing impact (angle 0) excavates nothing.
func Crater(energyMegatons, angleDeg float64, cfg EffectsConfig) CraterEffect {
	if energyMegatons <= 0 {
		return CraterEffect{}
	}
	diameter := craterDiameterScaleM * math.Pow(energyMegatons, 0.25) * math.Sin(angleDeg*math.Pi/180)
	if diameter <= 0 {
		return CraterEffect{}
	}
	depth := diameter * craterDepthRatio
	volume := math.Pi / 6 * diameter * diameter * depth
	radiusKm := diameter / 2 / units.MetersPerKilometer
	return CraterEffect{
		DiameterM:  diameter,
		DepthM:     depth,
		VolumeM3:   volume,
		Casualties: exposure(radiusKm, cfg.CraterDensity),
	}
}

// CraterFromDiameter rebuilds the crater effect around a known diameter,
// keeping the depth ratio and volume model consistent with Crater.
func CraterFromDiameter(diameterM float64, cfg EffectsConfig) CraterEffect {
	if diameterM <= 0 {
		return CraterEffect{}
	}
	depth := diameterM * craterDepthRatio
	volume := math.Pi / 6 * diameterM * diameterM * depth
	radiusKm := diameterM / 2 / units.MetersPerKilometer
	return CraterEffect{
		DiameterM:  diameterM,
		DepthM:     depth,
		VolumeM3:   volume,
		Casualties: exposure(radiusKm, cfg.CraterDensity),
	}
}

// Fireball models the thermal flash and its burn tiers.
func Fireball(energyMegatons float64, cfg EffectsConfig) FireballEffect {
	if energyMegatons <= 0 {
		return FireballEffect{}
	}
	radius := fireballRadiusScaleKm * math.Pow(energyMegatons, 0.4)
	return FireballEffect{
		RadiusKm:           radius,
		ThirdDegreeBurnKm:  radius * fireballThirdDegree,
		SecondDegreeBurnKm: radius * fireballSecondDegree,
		ClothingIgnitionKm: radius * fireballClothing,
		TreeIgnitionKm:     radius * fireballTrees,
		Casualties:         exposure(radius*fireballThirdDegree, cfg.FireballDensity),
	}
}

// Shockwave models the overpressure wave.
func Shockwave(energyMegatons float64, cfg EffectsConfig) ShockwaveEffect {
	if energyMegatons <= 0 {
		return ShockwaveEffect{}
	}
	scale := math.Pow(energyMegatons, 0.33)
	// Sub-nanoton energies drive the log term below -180 dB; loudness
	// cannot be negative, so the floor is silence.
	decibels := shockwaveBaseDb + 20*math.Log10(energyMegatons)
	if decibels < 0 {
		decibels = 0
	}
	return ShockwaveEffect{
		Decibels:           decibels,
		LungDamageKm:       shockwaveLungKm * scale,
		EardrumRuptureKm:   shockwaveEardrumKm * scale,
		BuildingCollapseKm: shockwaveBuildingKm * scale,
		HomeCollapseKm:     shockwaveHomeKm * scale,
		Casualties:         exposure(shockwaveEardrumKm*scale, cfg.ShockwaveDensity),
	}
}

// WindBlast models the blast wind. Peak speed is reported at the reference
// distance; WindSpeedAt gives the decay curve.
func WindBlast(energyMegatons float64, cfg EffectsConfig) WindBlastEffect {
	if energyMegatons <= 0 {
		return WindBlastEffect{}
	}
	scale := math.Pow(energyMegatons, 0.33)
	return WindBlastEffect{
		PeakSpeedMps:   WindSpeedAt(energyMegatons, windReferenceDistKm),
		JupiterStormKm: windJupiterKm * scale,
		LeveledKm:      windLeveledKm * scale,
		Ef5TornadoKm:   windTornadoKm * scale,
		TreesDownKm:    windTreesKm * scale,
		Casualties:     exposure(windLeveledKm*scale, cfg.WindBlastDensity),
	}
}

// WindSpeedAt returns the blast wind speed in m/s at distanceKm from the
// impact point. Zero for degenerate inputs.
func WindSpeedAt(energyMegatons, distanceKm float64) float64 {
	if energyMegatons <= 0 || distanceKm <= 0 {
		return 0
	}
	return windPeakSpeedScaleMps * math.Pow(energyMegatons, 0.33) / math.Pow(distanceKm, 0.7)
}

// Earthquake derives a Richter-like magnitude from the released energy in
// Joules, capped at 10.
func Earthquake(energyJoules float64, cfg EffectsConfig) EarthquakeEffect {
	if energyJoules <= 0 {
		return EarthquakeEffect{}
	}
	magnitude := (math.Log10(energyJoules) - 4.8) / 1.5
	if magnitude < 0 {
		return EarthquakeEffect{}
	}
	if magnitude > quakeMagnitudeCap {
		magnitude = quakeMagnitudeCap
	}
	radius := quakeRadiusScaleKm * math.Pow(10, quakeRadiusExponent*magnitude)
	return EarthquakeEffect{
		Magnitude:    magnitude,
		FeltRadiusKm: radius,
		Casualties:   exposure(radius, cfg.EarthquakeDensity),
	}
}

// Compute derives the full effect set for the given energy and entry angle.
func Compute(energyJoules, energyMegatons, angleDeg float64, cfg EffectsConfig) (CraterEffect, FireballEffect, ShockwaveEffect, WindBlastEffect, EarthquakeEffect) {
	return Crater(energyMegatons, angleDeg, cfg),
		Fireball(energyMegatons, cfg),
		Shockwave(energyMegatons, cfg),
		WindBlast(energyMegatons, cfg),
		Earthquake(energyJoules, cfg)
}
