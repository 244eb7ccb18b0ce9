package sim

import (
	"fmt"
	"strings"

	"github.com/plus3/campfire/ecs"
)

// EntityState is a read-only view of one entity's demo components.
type EntityState struct {
	Id       ecs.EntityId `json:"id"`
	Name     string       `json:"name,omitempty"`
	Position *Position    `json:"position,omitempty"`
	Velocity *Velocity    `json:"velocity,omitempty"`
	Health   *Health      `json:"health,omitempty"`
}

// Snapshot captures the state of every entity in creation order.
func Snapshot(world *ecs.World) []EntityState {
	states := make([]EntityState, 0, world.Len())
	for id, entity := range world.Entities() {
		states = append(states, StateOf(id, entity))
	}
	return states
}

// StateOf captures a single entity.
func StateOf(id ecs.EntityId, entity *ecs.EntityData) EntityState {
	state := EntityState{Id: id}

	if name, ok := ecs.Get[Name](entity); ok {
		state.Name = string(name)
	}
	if pos, ok := ecs.Get[Position](entity); ok {
		state.Position = &pos
	}
	if vel, ok := ecs.Get[Velocity](entity); ok {
		state.Velocity = &vel
	}
	if health, ok := ecs.Get[Health](entity); ok {
		state.Health = &health
	}
	return state
}

func (s EntityState) String() string {
	parts := make([]string, 0, 4)
	if s.Name != "" {
		parts = append(parts, "name="+s.Name)
	}
	if s.Position != nil {
		parts = append(parts, fmt.Sprintf("position=%g:%g", s.Position.X, s.Position.Y))
	}
	if s.Velocity != nil {
		parts = append(parts, fmt.Sprintf("velocity=%g:%g", s.Velocity.DX, s.Velocity.DY))
	}
	if s.Health != nil {
		parts = append(parts, fmt.Sprintf("health=%d/%d", s.Health.Current, s.Health.Max))
	}
	if len(parts) == 0 {
		parts = append(parts, "(no components)")
	}
	return fmt.Sprintf("entity %d: %s", s.Id, strings.Join(parts, " "))
}
