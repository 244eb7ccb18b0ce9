package ecs

import (
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kamstrup/intmap"
)

// EntityId is the handle of an entity: its position in the world's entity
// list. Handles are issued sequentially from 0 and never reused.
type EntityId uint32

// Index returns the position of the entity in the world's entity list.
func (e EntityId) Index() int {
	return int(e)
}

const defaultEntityCapacity = 8

// EntityData owns the components of a single entity, at most one value per
// component type. The zero value is an empty entity ready to use.
type EntityData struct {
	slots *intmap.Map[ComponentId, slot]
}

// NewEntityData creates an empty entity store.
func NewEntityData() *EntityData {
	return &EntityData{
		slots: intmap.New[ComponentId, slot](defaultEntityCapacity),
	}
}

func (e *EntityData) lookup(id ComponentId) (slot, bool) {
	if e.slots == nil {
		return nil, false
	}
	return e.slots.Get(id)
}

// put stores s under its type's id, replacing any previous value.
func (e *EntityData) put(s slot) {
	if e.slots == nil {
		e.slots = intmap.New[ComponentId, slot](defaultEntityCapacity)
	}
	e.slots.Put(s.componentType().Id, s)
}

// Extend inserts the given components. A component whose type is already
// present replaces the previous value. Each entity receives its own copy, so
// the same Data may seed several entities.
func (e *EntityData) Extend(components ...Data) {
	for _, c := range components {
		if c.slot == nil {
			panic("cannot extend entity with an empty Data")
		}
		e.put(c.slot.clone())
	}
}

// Len returns the number of components held by the entity.
func (e *EntityData) Len() int {
	if e.slots == nil {
		return 0
	}
	return e.slots.Len()
}

// Types returns the component types held by the entity, ordered by id.
func (e *EntityData) Types() []*ComponentType {
	types := make([]*ComponentType, 0, e.Len())
	if e.slots == nil {
		return types
	}

	e.slots.ForEach(func(_ ComponentId, s slot) bool {
		types = append(types, s.componentType())
		return true
	})

	slices.SortFunc(types, func(a, b *ComponentType) int {
		return int(a.Id) - int(b.Id)
	})
	return types
}

func (e *EntityData) String() string {
	parts := make([]string, 0, e.Len())
	for _, ct := range e.Types() {
		s, _ := e.lookup(ct.Id)
		parts = append(parts, s.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump renders every component of the entity in detail, ordered by id.
func (e *EntityData) Dump() string {
	var b strings.Builder
	for _, ct := range e.Types() {
		s, _ := e.lookup(ct.Id)
		dumpConfig.Fdump(&b, s.get())
	}
	return b.String()
}

// Insert stores value as the entity's T component, replacing any previous one.
func Insert[T any](e *EntityData, value T) {
	e.put(newSlot(value))
}

// Get returns a copy of the entity's T component. The boolean is false if
// the entity has no T; absence is not an error.
func Get[T any](e *EntityData) (T, bool) {
	s, ok := e.lookup(ComponentTypeOf[T]().Id)
	if !ok {
		var zero T
		return zero, false
	}
	return recoverValue[T](s), true
}

// Has reports whether the entity holds a T component.
func Has[T any](e *EntityData) bool {
	_, ok := e.lookup(ComponentTypeOf[T]().Id)
	return ok
}

// Remove deletes the entity's T component and reports whether it existed.
func Remove[T any](e *EntityData) bool {
	if e.slots == nil {
		return false
	}
	return e.slots.Del(ComponentTypeOf[T]().Id)
}
