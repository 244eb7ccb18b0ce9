package sim

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/plus3/campfire/ecs"
)

// Display prints the position and velocity of every moving entity.
func Display(w io.Writer) ecs.System {
	return ecs.Named("display", ecs.NewSystem2[ecs.Read[Position], ecs.Read[Velocity]](func(pos Position, vel Velocity) {
		fmt.Fprintf(w, "position=%g:%g velocity=%g:%g\n", pos.X, pos.Y, vel.DX, vel.DY)
	}))
}

// Movement adds an entity's velocity to its position.
func Movement() ecs.System {
	return ecs.Named("movement", ecs.NewSystem2[ecs.Write[Position], ecs.Read[Velocity]](func(pos *Position, vel Velocity) {
		pos.X += vel.DX
		pos.Y += vel.DY
	}))
}

// Accelerate bends every velocity: one more along x, one less along y.
func Accelerate() ecs.System {
	return ecs.Named("accelerate", ecs.NewSystem1[ecs.Write[Velocity]](func(vel *Velocity) {
		vel.DX += 1
		vel.DY -= 1
	}))
}

// Regen heals one point per tick without exceeding Max.
func Regen() ecs.System {
	return ecs.Named("regen", ecs.NewSystem1[ecs.Write[Health]](func(h *Health) {
		if h.Current < h.Max {
			h.Current++
		}
	}))
}

// systemCatalogue maps the system names usable in scenario files to their
// constructors. Systems that print write to the given writer.
var systemCatalogue = map[string]func(w io.Writer) ecs.System{
	"display":    Display,
	"movement":   func(io.Writer) ecs.System { return Movement() },
	"accelerate": func(io.Writer) ecs.System { return Accelerate() },
	"regen":      func(io.Writer) ecs.System { return Regen() },
}

// SystemNames returns the names accepted in scenario files, sorted.
func SystemNames() []string {
	names := make([]string, 0, len(systemCatalogue))
	for name := range systemCatalogue {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewSystem builds the named system.
func NewSystem(name string, w io.Writer) (ecs.System, error) {
	ctor, ok := systemCatalogue[name]
	if !ok {
		return nil, fmt.Errorf("unknown system %q: must be one of %s", name, strings.Join(SystemNames(), ", "))
	}
	return ctor(w), nil
}
