// Package sim holds the demo simulation driven by the campfire command:
// its components, its systems and the scenario files that seed a world.
package sim

// Position is where an entity is.
type Position struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
}

// Velocity is how far an entity moves per tick.
type Velocity struct {
	DX float32 `yaml:"dx" json:"dx"`
	DY float32 `yaml:"dy" json:"dy"`
}

// Health regenerates by one point per tick up to Max.
type Health struct {
	Current int `yaml:"current" json:"current"`
	Max     int `yaml:"max" json:"max"`
}

// Name labels an entity in output.
type Name string
