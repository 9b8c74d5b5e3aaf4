// Impact domain types shared across the engine, writers, and admin UI
package impact

import (
	"time"

	"meteorsim/internal/units"
)

// AsteroidParameters describes one impactor. Velocity is km/s, diameter is
// meters, angle is degrees from horizontal. The record is treated as an
// immutable value; a run always receives a complete record.
type AsteroidParameters struct {
	DiameterM    float64           `json:"diameter_m" yaml:"diameter_m"`
	VelocityKmps float64           `json:"velocity_kmps" yaml:"velocity_kmps"`
	AngleDeg     float64           `json:"angle_deg" yaml:"angle_deg"`
	Composition  units.Composition `json:"composition" yaml:"composition"`
}

// ImpactLocation is a point on the surface, optionally named.
type ImpactLocation struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
}

// CraterEffect is the excavated crater and its exposure estimate.
type CraterEffect struct {
	DiameterM  float64 `json:"diameter_m"`
	DepthM     float64 `json:"depth_m"`
	VolumeM3   float64 `json:"volume_m3"`
	Casualties float64 `json:"casualties"`
}

// FireballEffect holds the fireball radius and its burn tiers, km. Tier radii
// grow as severity drops.
type FireballEffect struct {
	RadiusKm           float64 `json:"radius_km"`
	ThirdDegreeBurnKm  float64 `json:"third_degree_burn_km"`
	SecondDegreeBurnKm float64 `json:"second_degree_burn_km"`
	ClothingIgnitionKm float64 `json:"clothing_ignition_km"`
	TreeIgnitionKm     float64 `json:"tree_ignition_km"`
	Casualties         float64 `json:"casualties"`
}

// ShockwaveEffect holds overpressure loudness and tiered damage radii, km.
type ShockwaveEffect struct {
	Decibels           float64 `json:"decibels"`
	LungDamageKm       float64 `json:"lung_damage_km"`
	EardrumRuptureKm   float64 `json:"eardrum_rupture_km"`
	BuildingCollapseKm float64 `json:"building_collapse_km"`
	HomeCollapseKm     float64 `json:"home_collapse_km"`
	Casualties         float64 `json:"casualties"`
}

// WindBlastEffect holds the peak wind speed and tiered destruction radii, km.
type WindBlastEffect struct {
	PeakSpeedMps   float64 `json:"peak_speed_mps"`
	JupiterStormKm float64 `json:"jupiter_storm_km"`
	LeveledKm      float64 `json:"leveled_km"`
	Ef5TornadoKm   float64 `json:"ef5_tornado_km"`
	TreesDownKm    float64 `json:"trees_down_km"`
	Casualties     float64 `json:"casualties"`
}

// EarthquakeEffect holds the seismic magnitude and felt radius.
type EarthquakeEffect struct {
	Magnitude    float64 `json:"magnitude"`
	FeltRadiusKm float64 `json:"felt_radius_km"`
	Casualties   float64 `json:"casualties"`
}

// SimulationResult is the full outcome of one impact computation. Energy
// fields are mutually consistent (megatons = joules / units.JoulesPerMegaton)
// and every magnitude field is non-negative and finite.
type SimulationResult struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"ts"`
	MassKg         float64          `json:"mass_kg"`
	EnergyJoules   float64          `json:"energy_joules"`
	EnergyMegatons float64          `json:"energy_megatons"`
	Crater         CraterEffect     `json:"crater"`
	Fireball       FireballEffect   `json:"fireball"`
	Shockwave      ShockwaveEffect  `json:"shockwave"`
	WindBlast      WindBlastEffect  `json:"wind_blast"`
	Earthquake     EarthquakeEffect `json:"earthquake"`
	Location       ImpactLocation   `json:"location"`
}
