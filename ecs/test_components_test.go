package ecs_test

import "slices"

// Common test component types
type Position struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Counter struct {
	Ticks int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// Inventory holds reference data and therefore implements Clone.
type Inventory struct {
	Items []string
}

func (i Inventory) Clone() Inventory {
	return Inventory{Items: slices.Clone(i.Items)}
}

// Tags is a slice component; it must clone to be accepted.
type Tags []string

func (t Tags) Clone() Tags {
	return slices.Clone(t)
}
