// Named parameter bundles for historical and notable impact scenarios
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"meteorsim/internal/impact"
	"meteorsim/internal/units"
)

// Preset is a named, pre-filled parameter bundle. Location is optional; the
// engine picks a placeholder when it is absent.
type Preset struct {
	Name        string                    `yaml:"name" json:"name"`
	Description string                    `yaml:"description,omitempty" json:"description,omitempty"`
	Params      impact.AsteroidParameters `yaml:"params" json:"params"`
	Location    *impact.ImpactLocation    `yaml:"location,omitempty" json:"location,omitempty"`
}

// Catalog is an ordered collection of presets addressable by name.
type Catalog struct {
	presets []Preset
}

// Builtin returns the stock catalog of historical and hypothetical events.
func Builtin() *Catalog {
	return &Catalog{presets: []Preset{
		{
			Name:        "chicxulub",
			Description: "Cretaceous extinction impactor, Yucatán peninsula",
			Params:      impact.AsteroidParameters{DiameterM: 10000, VelocityKmps: 20, AngleDeg: 60, Composition: units.CompositionStone},
			Location:    &impact.ImpactLocation{Lat: 21.4, Lon: -89.5, Name: "Chicxulub, Yucatán"},
		},
		{
			Name:        "tunguska",
			Description: "1908 Siberian airburst",
			Params:      impact.AsteroidParameters{DiameterM: 60, VelocityKmps: 15, AngleDeg: 35, Composition: units.CompositionIce},
			Location:    &impact.ImpactLocation{Lat: 60.886, Lon: 101.894, Name: "Podkamennaya Tunguska"},
		},
		{
			Name:        "chelyabinsk",
			Description: "2013 Chelyabinsk meteor",
			Params:      impact.AsteroidParameters{DiameterM: 20, VelocityKmps: 19, AngleDeg: 18, Composition: units.CompositionStone},
			Location:    &impact.ImpactLocation{Lat: 54.8, Lon: 61.1, Name: "Chelyabinsk Oblast"},
		},
		{
			Name:        "barringer",
			Description: "Meteor Crater, Arizona (~50k years ago)",
			Params:      impact.AsteroidParameters{DiameterM: 50, VelocityKmps: 12.8, AngleDeg: 45, Composition: units.CompositionIron},
			Location:    &impact.ImpactLocation{Lat: 35.027, Lon: -111.022, Name: "Coconino County, Arizona"},
		},
		{
			Name:        "apophis",
			Description: "Hypothetical 99942 Apophis ground impact",
			Params:      impact.AsteroidParameters{DiameterM: 370, VelocityKmps: 12.6, AngleDeg: 45, Composition: units.CompositionStone},
		},
	}}
}

// Load reads additional presets from a YAML file and appends them to a copy
// of the builtin catalog.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var extra []Preset
	if err := yaml.Unmarshal(b, &extra); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	c := Builtin()
	c.presets = append(c.presets, extra...)
	return c, nil
}

// All returns the presets in catalog order.
func (c *Catalog) All() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// ByName looks a preset up by its name.
func (c *Catalog) ByName(name string) (Preset, bool) {
	for _, p := range c.presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
