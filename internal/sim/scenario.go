package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/campfire/ecs"
)

// Scenario describes a world to build and how long to run it.
type Scenario struct {
	// Name identifies the scenario in output.
	Name string `yaml:"name"`

	// Ticks is the number of times the world is advanced.
	Ticks int `yaml:"ticks"`

	// Systems lists system names in execution order.
	Systems []string `yaml:"systems"`

	// Entities are created in order, so the first entity gets handle 0.
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec lists the initial components of one entity. Absent fields are
// components the entity does not have.
type EntitySpec struct {
	Name     string    `yaml:"name,omitempty"`
	Position *Position `yaml:"position,omitempty"`
	Velocity *Velocity `yaml:"velocity,omitempty"`
	Health   *Health   `yaml:"health,omitempty"`
}

// DefaultScenario is the classic campfire demo: a single entity drifting
// from the origin while its velocity bends.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:    "campfire",
		Ticks:   3,
		Systems: []string{"display", "movement", "accelerate"},
		Entities: []EntitySpec{
			{
				Position: &Position{X: 0, Y: 0},
				Velocity: &Velocity{DX: 4, DY: 7},
			},
		},
	}
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

// ParseScenario decodes and validates a YAML scenario. Unknown fields are
// rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse scenario: empty document")
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Validate checks the scenario for values that cannot be run.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("scenario name is required")
	}
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", s.Ticks)
	}

	for _, name := range s.Systems {
		if _, err := NewSystem(name, io.Discard); err != nil {
			return err
		}
	}

	for idx, entity := range s.Entities {
		if h := entity.Health; h != nil {
			if h.Max < 0 || h.Current < 0 {
				return fmt.Errorf("entity %d: health must not be negative", idx)
			}
			if h.Current > h.Max {
				return fmt.Errorf("entity %d: health %d exceeds max %d", idx, h.Current, h.Max)
			}
		}
	}
	return nil
}

// Seed creates the scenario's entities in world and returns their handles.
func (s *Scenario) Seed(world *ecs.World) []ecs.EntityId {
	ids := make([]ecs.EntityId, 0, len(s.Entities))

	for _, spec := range s.Entities {
		id := world.NewEntity()
		world.Entity(id).Extend(spec.components()...)
		ids = append(ids, id)
	}
	return ids
}

func (e EntitySpec) components() []ecs.Data {
	components := make([]ecs.Data, 0, 4)
	if e.Name != "" {
		components = append(components, ecs.NewData(Name(e.Name)))
	}
	if e.Position != nil {
		components = append(components, ecs.NewData(*e.Position))
	}
	if e.Velocity != nil {
		components = append(components, ecs.NewData(*e.Velocity))
	}
	if e.Health != nil {
		components = append(components, ecs.NewData(*e.Health))
	}
	return components
}

// BuildSystems resolves the scenario's system names. Systems that print
// write to w.
func (s *Scenario) BuildSystems(w io.Writer) ([]ecs.System, error) {
	systems := make([]ecs.System, 0, len(s.Systems))
	for _, name := range s.Systems {
		system, err := NewSystem(name, w)
		if err != nil {
			return nil, err
		}
		systems = append(systems, system)
	}
	return systems, nil
}
