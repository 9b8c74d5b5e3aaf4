package impact

import (
	"math"
	"testing"
)

func TestCrater_MonotoneInEnergy(t *testing.T) {
	cfg := DefaultEffectsConfig()
	prev := 0.0
	for _, mt := range []float64{0.1, 1, 10, 100, 1000} {
		c := Crater(mt, 45, cfg)
		if c.DiameterM <= prev {
			t.Errorf("Crater diameter should grow with energy: %g MT -> %g m (prev %g)", mt, c.DiameterM, prev)
		}
		prev = c.DiameterM
	}
}

func TestCrater_GrazingImpactExcavatesNothing(t *testing.T) {
	c := Crater(100, 0, DefaultEffectsConfig())
	if c != (CraterEffect{}) {
		t.Errorf("Angle 0 should produce a zero crater, got %+v", c)
	}
}

func TestCrater_DepthRatio(t *testing.T) {
	c := Crater(195, 45, DefaultEffectsConfig())
	if !almostEqual(c.DepthM, c.DiameterM*0.2, 1e-9) {
		t.Errorf("Depth should be 0.2 × diameter: depth=%g diameter=%g", c.DepthM, c.DiameterM)
	}
	wantVolume := math.Pi / 6 * c.DiameterM * c.DiameterM * c.DepthM
	if !almostEqual(c.VolumeM3, wantVolume, 1e-9) {
		t.Errorf("Volume mismatch: got %g want %g", c.VolumeM3, wantVolume)
	}
}

func TestFireball_TiersGrowAsSeverityDrops(t *testing.T) {
	f := Fireball(50, DefaultEffectsConfig())
	if !(f.RadiusKm < f.ThirdDegreeBurnKm && f.ThirdDegreeBurnKm < f.SecondDegreeBurnKm &&
		f.SecondDegreeBurnKm < f.ClothingIgnitionKm && f.ClothingIgnitionKm < f.TreeIgnitionKm) {
		t.Errorf("Burn tiers out of order: %+v", f)
	}
}

func TestShockwave_TierOrderAndDecibels(t *testing.T) {
	s := Shockwave(10, DefaultEffectsConfig())
	if !(s.LungDamageKm < s.EardrumRuptureKm && s.EardrumRuptureKm < s.BuildingCollapseKm &&
		s.BuildingCollapseKm < s.HomeCollapseKm) {
		t.Errorf("Shockwave tiers out of order: %+v", s)
	}
	want := 180 + 20*math.Log10(10)
	if !almostEqual(s.Decibels, want, 1e-9) {
		t.Errorf("Expected %g dB, got %g", want, s.Decibels)
	}
}

func TestWindBlast_SpeedDecaysWithDistance(t *testing.T) {
	near := WindSpeedAt(100, 1)
	far := WindSpeedAt(100, 10)
	if far >= near {
		t.Errorf("Wind speed should decay with distance: near=%g far=%g", near, far)
	}
	if WindSpeedAt(100, 0) != 0 {
		t.Error("Zero distance should yield zero speed, not infinity")
	}
}

func TestEarthquake_MagnitudeFormulaAndCap(t *testing.T) {
	e := Earthquake(8.168e17, DefaultEffectsConfig())
	want := (math.Log10(8.168e17) - 4.8) / 1.5
	if !almostEqual(e.Magnitude, want, 1e-9) {
		t.Errorf("Expected magnitude %g, got %g", want, e.Magnitude)
	}

	capped := Earthquake(1e40, DefaultEffectsConfig())
	if capped.Magnitude != 10 {
		t.Errorf("Magnitude should cap at 10, got %g", capped.Magnitude)
	}
}

func TestEffects_DegenerateEnergyIsAllZero(t *testing.T) {
	cfg := DefaultEffectsConfig()
	for _, mt := range []float64{0, -1, -1e6} {
		crater, fireball, shock, wind, quake := Compute(mt*4.184e15, mt, 45, cfg)
		if crater != (CraterEffect{}) || fireball != (FireballEffect{}) ||
			shock != (ShockwaveEffect{}) || wind != (WindBlastEffect{}) || quake != (EarthquakeEffect{}) {
			t.Errorf("Energy %g MT should produce all-zero effects", mt)
		}
	}
}

func TestEffects_NoNaNForTinyEnergy(t *testing.T) {
	// Sub-megaton energies drive log10 negative; outputs must stay finite.
	s := Shockwave(1e-9, DefaultEffectsConfig())
	for _, v := range []float64{s.Decibels, s.LungDamageKm, s.Casualties} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("Non-finite shockwave output: %+v", s)
		}
	}
	q := Earthquake(1e3, DefaultEffectsConfig())
	if q != (EarthquakeEffect{}) {
		t.Errorf("Sub-threshold energy should produce a zero earthquake, got %+v", q)
	}
}

func TestShockwave_DecibelsNeverNegative(t *testing.T) {
	// A 0.1 m stone impactor at 1 km/s releases ~1.9e-10 MT, pushing the raw
	// log term to about -14.5 dB. Loudness floors at silence.
	for _, mt := range []float64{1.877e-10, 1e-9, 1e-12} {
		s := Shockwave(mt, DefaultEffectsConfig())
		if s.Decibels < 0 {
			t.Errorf("Decibels must not go negative: %g MT -> %g dB", mt, s.Decibels)
		}
		if s.LungDamageKm <= 0 {
			t.Errorf("Tier radii must stay positive for positive energy: %+v", s)
		}
	}
	// Above 1e-9 MT the log term is positive again and must pass through.
	loud := Shockwave(10, DefaultEffectsConfig())
	if loud.Decibels != 180+20*math.Log10(10) {
		t.Errorf("Clamp must not alter audible results, got %g dB", loud.Decibels)
	}
}

func TestExposure_ScalesWithConfiguredDensity(t *testing.T) {
	base := DefaultEffectsConfig()
	doubled := base
	doubled.FireballDensity = base.FireballDensity * 2

	f1 := Fireball(50, base)
	f2 := Fireball(50, doubled)
	if !almostEqual(f2.Casualties, 2*f1.Casualties, 1e-9) {
		t.Errorf("Doubling density should double exposure: %g vs %g", f1.Casualties, f2.Casualties)
	}
}
