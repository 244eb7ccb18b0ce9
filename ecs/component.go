package ecs

import (
	"reflect"
	"sync"
)

// ComponentId identifies a component type. Ids are assigned the first time a
// type is used as a component and are stable for the life of the process.
type ComponentId uint32

// ComponentType describes a component type known to the registry.
type ComponentType struct {
	Id   ComponentId
	Name string
	Type reflect.Type
}

func (c *ComponentType) String() string {
	return c.Name
}

// Cloner is implemented by components that hold reference data such as
// slices or maps. Every read of a Cloner component goes through Clone, so a
// borrowed copy never aliases the value held by the entity.
//
// A component type holding reference data that does not implement Cloner is
// rejected the first time it is used. Clone may be declared on the value or
// the pointer receiver.
type Cloner[T any] interface {
	Clone() T
}

// componentRegistry assigns ids to component types on first use.
// Any Go value type can be a component; there is no registration step.
type componentRegistry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*ComponentType
}

var components = &componentRegistry{
	types: make(map[reflect.Type]*ComponentType),
}

func (r *componentRegistry) lookup(t reflect.Type) *ComponentType {
	r.mu.RLock()
	ct, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return ct
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ct, ok := r.types[t]; ok {
		return ct
	}

	checkComponentKind(t)

	ct = &ComponentType{
		Id:   ComponentId(len(r.types) + 1),
		Name: t.String(),
		Type: t,
	}
	r.types[t] = ct
	return ct
}

// ComponentTypeOf returns the type descriptor for T, assigning it an id if T
// has not been seen before. It panics if T is not a value type, or if T holds
// reference data and does not implement Cloner.
func ComponentTypeOf[T any]() *ComponentType {
	return components.lookup(reflect.TypeFor[T]())
}

// checkComponentKind rejects types whose copies would share state.
// Components can be structs, arrays or primitives (int, string, etc.), but
// not pointers, maps, channels, functions or interfaces. Slices, and structs
// or arrays that contain any reference data, are accepted only when the type
// implements Cloner.
func checkComponentKind(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("component type " + t.String() + " must be a value type, not a " + t.Kind().String())
	}

	if holdsReference(t) && !implementsCloner(t) {
		panic("component type " + t.String() + " holds reference data and must implement Clone() " + t.String())
	}
}

// holdsReference reports whether a plain assignment of a t leaves the copy
// sharing memory with the original.
func holdsReference(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return true
	case reflect.Array:
		return t.Len() > 0 && holdsReference(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsReference(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// implementsCloner reports whether t or *t has a method Clone() t.
func implementsCloner(t reflect.Type) bool {
	for _, candidate := range []reflect.Type{t, reflect.PointerTo(t)} {
		m, ok := candidate.MethodByName("Clone")
		if !ok {
			continue
		}
		// method types from a reflect.Type include the receiver
		if m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == t {
			return true
		}
	}
	return false
}

// cloneValue copies v, going through Clone when T provides one.
func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
