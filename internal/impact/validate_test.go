package impact

import (
	"strings"
	"testing"

	"meteorsim/internal/units"
)

func TestValidate_AcceptsTypicalParameters(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: 500, VelocityKmps: 30, AngleDeg: 45, Composition: units.CompositionStone})
	if !r.OK {
		t.Errorf("Expected valid parameters, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", r.Warnings)
	}
}

func TestValidate_RejectsNegativeDiameter(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: -5, VelocityKmps: 30, AngleDeg: 45, Composition: units.CompositionStone})
	if r.OK {
		t.Fatal("Expected rejection for negative diameter")
	}
	if !hasFieldError(r.Errors, "diameter") {
		t.Errorf("Expected a diameter error, got %v", r.Errors)
	}
}

func TestValidate_RejectsSteepAngle(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: 100, VelocityKmps: 20, AngleDeg: 120, Composition: units.CompositionIron})
	if r.OK {
		t.Fatal("Expected rejection for angle 120")
	}
	if !hasFieldError(r.Errors, "angle") {
		t.Errorf("Expected an angle error, got %v", r.Errors)
	}
}

func TestValidate_RejectsUnknownComposition(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: 100, VelocityKmps: 20, AngleDeg: 45, Composition: "mithril"})
	if r.OK {
		t.Fatal("Expected rejection for unknown composition")
	}
	if !hasFieldError(r.Errors, "composition") {
		t.Errorf("Expected a composition error, got %v", r.Errors)
	}
}

func TestValidate_ExtinctionScaleDiameterWarnsOnly(t *testing.T) {
	// Chicxulub-class presets exceed the sane bound and must still run.
	r := Validate(AsteroidParameters{DiameterM: 2e5, VelocityKmps: 20, AngleDeg: 60, Composition: units.CompositionStone})
	if !r.OK {
		t.Fatalf("Oversized diameter should warn, not block: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("Expected a diameter warning")
	}
}

func TestValidate_SlowVelocityWarnsInsideHardBounds(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: 100, VelocityKmps: 5, AngleDeg: 45, Composition: units.CompositionIce})
	if !r.OK {
		t.Fatalf("5 km/s is inside the hard bounds: %v", r.Errors)
	}
	if !hasFieldError(r.Warnings, "velocity") {
		t.Errorf("Expected a velocity warning, got %v", r.Warnings)
	}
}

func TestValidate_VelocityHardBounds(t *testing.T) {
	r := Validate(AsteroidParameters{DiameterM: 100, VelocityKmps: 0.5, AngleDeg: 45, Composition: units.CompositionIce})
	if r.OK {
		t.Error("0.5 km/s should be rejected")
	}
}

func hasFieldError(msgs []string, field string) bool {
	for _, m := range msgs {
		if strings.HasPrefix(m, field+":") {
			return true
		}
	}
	return false
}
