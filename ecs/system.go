package ecs

import (
	"fmt"
	"reflect"
)

// System represents a behavior that is applied to every entity once per tick.
// Systems carry no per-entity state; state that has to survive between ticks
// belongs in a component.
type System interface {
	Apply(e *EntityData)
}

// SystemFunc adapts an ordinary function to the System interface.
type SystemFunc func(e *EntityData)

func (f SystemFunc) Apply(e *EntityData) {
	f(e)
}

// querySystem1 pairs a query with its callback. Apply has a value receiver:
// every invocation works on a copy, the registered system is never consumed.
type querySystem1[A Access[RA], RA any] struct {
	query Query1[A, RA]
	fn    func(RA)
}

func (s querySystem1[A, RA]) Apply(e *EntityData) {
	s.query.Call(e, s.fn)
}

func (s querySystem1[A, RA]) String() string {
	return s.query.String()
}

type querySystem2[A Access[RA], B Access[RB], RA, RB any] struct {
	query Query2[A, B, RA, RB]
	fn    func(RA, RB)
}

func (s querySystem2[A, B, RA, RB]) Apply(e *EntityData) {
	s.query.Call(e, s.fn)
}

func (s querySystem2[A, B, RA, RB]) String() string {
	return s.query.String()
}

type querySystem3[A Access[RA], B Access[RB], C Access[RC], RA, RB, RC any] struct {
	query Query3[A, B, C, RA, RB, RC]
	fn    func(RA, RB, RC)
}

func (s querySystem3[A, B, C, RA, RB, RC]) Apply(e *EntityData) {
	s.query.Call(e, s.fn)
}

func (s querySystem3[A, B, C, RA, RB, RC]) String() string {
	return s.query.String()
}

// NewSystem1 creates a system borrowing one component:
//
//	ecs.NewSystem1[ecs.Write[Velocity]](func(v *Velocity) { v.DX++ })
func NewSystem1[A Access[RA], RA any](fn func(RA)) System {
	if fn == nil {
		panic("system callback must not be nil")
	}
	return querySystem1[A, RA]{fn: fn}
}

// NewSystem2 creates a system borrowing two components. The callback receives
// them in the order the accesses are declared:
//
//	ecs.NewSystem2[ecs.Write[Position], ecs.Read[Velocity]](func(p *Position, v Velocity) {
//		p.X += v.DX
//	})
//
// It panics if both accesses name the same component type.
func NewSystem2[A Access[RA], B Access[RB], RA, RB any](fn func(RA, RB)) System {
	if fn == nil {
		panic("system callback must not be nil")
	}

	query := Query2[A, B, RA, RB]{}
	if err := query.Validate(); err != nil {
		panic(err)
	}
	return querySystem2[A, B, RA, RB]{query: query, fn: fn}
}

// NewSystem3 creates a system borrowing three components.
// It panics if any two accesses name the same component type.
func NewSystem3[A Access[RA], B Access[RB], C Access[RC], RA, RB, RC any](fn func(RA, RB, RC)) System {
	if fn == nil {
		panic("system callback must not be nil")
	}

	query := Query3[A, B, C, RA, RB, RC]{}
	if err := query.Validate(); err != nil {
		panic(err)
	}
	return querySystem3[A, B, C, RA, RB, RC]{query: query, fn: fn}
}

type namedSystem struct {
	System
	name string
}

func (s namedSystem) String() string {
	return s.name
}

// Named attaches a display name to a system, used in execution statistics.
func Named(name string, system System) System {
	return namedSystem{System: system, name: name}
}

func systemName(system System) string {
	if s, ok := system.(fmt.Stringer); ok {
		return s.String()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
