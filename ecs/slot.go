package ecs

import (
	"fmt"
	"reflect"
)

// slot is the type-erased box holding exactly one component value.
// A slot is always located by its ComponentId before it is recovered, so
// recovery against the wrong type cannot happen.
type slot interface {
	componentType() *ComponentType
	get() any
	clone() slot
	String() string
}

// typedSlot is the generic implementation of slot.
type typedSlot[T any] struct {
	ct    *ComponentType
	value T
}

func newSlot[T any](value T) *typedSlot[T] {
	return &typedSlot[T]{
		ct:    ComponentTypeOf[T](),
		value: value,
	}
}

func (s *typedSlot[T]) componentType() *ComponentType {
	return s.ct
}

func (s *typedSlot[T]) get() any {
	return s.value
}

func (s *typedSlot[T]) clone() slot {
	return &typedSlot[T]{
		ct:    s.ct,
		value: cloneValue(s.value),
	}
}

func (s *typedSlot[T]) String() string {
	if s.ct.Type.Kind() == reflect.Struct {
		return fmt.Sprintf("%s%+v", s.ct.Name, s.value)
	}
	return fmt.Sprintf("%s(%v)", s.ct.Name, s.value)
}

// recoverValue returns a copy of the value held by s. The store keeps its
// entry; only the copy is handed out.
func recoverValue[T any](s slot) T {
	typed, ok := s.(*typedSlot[T])
	if !ok {
		// lookups are keyed by the type's id, so this is a broken invariant
		panic("slot holding " + s.componentType().Name + " recovered as " + ComponentTypeOf[T]().Name)
	}
	return cloneValue(typed.value)
}

// Data is a component value paired with its type identity, ready to be
// inserted into an EntityData with Extend.
type Data struct {
	Type *ComponentType
	slot slot
}

// NewData erases value into a Data.
func NewData[T any](value T) Data {
	s := newSlot(value)
	return Data{
		Type: s.ct,
		slot: s,
	}
}

// Value returns the erased component value.
func (d Data) Value() any {
	if d.slot == nil {
		return nil
	}
	return d.slot.get()
}

func (d Data) String() string {
	if d.slot == nil {
		return "<nil>"
	}
	return d.slot.String()
}
