package ecs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateComponent is returned by Validate when a query names the same
// component type more than once.
var ErrDuplicateComponent = errors.New("query names a component type more than once")

// Query1 borrows a single component. Queries are zero sized; their shape is
// carried entirely by their type parameters.
type Query1[A Access[RA], RA any] struct{}

// Call checks out the component and invokes fn with it. If the entity lacks
// the component, fn is not called and Call returns false.
func (Query1[A, RA]) Call(e *EntityData, fn func(RA)) bool {
	var a A

	la, ok := a.checkout(e)
	if !ok {
		return false
	}
	defer la.reconcile()

	fn(la.ref)
	return true
}

// Validate always succeeds for a single component query.
func (Query1[A, RA]) Validate() error {
	return nil
}

func (Query1[A, RA]) String() string {
	var a A
	return describeQuery("Query1", a)
}

// Query2 borrows two distinct components.
type Query2[A Access[RA], B Access[RB], RA, RB any] struct{}

// Call checks out both components and invokes fn with them in declaration
// order. If either is missing, fn is not called, nothing is written back and
// Call returns false.
//
// Calling a query that fails Validate is undefined.
func (Query2[A, B, RA, RB]) Call(e *EntityData, fn func(RA, RB)) bool {
	var a A
	var b B

	la, ok := a.checkout(e)
	if !ok {
		return false
	}
	lb, ok := b.checkout(e)
	if !ok {
		return false
	}
	defer func() {
		la.reconcile()
		lb.reconcile()
	}()

	fn(la.ref, lb.ref)
	return true
}

// Validate reports ErrDuplicateComponent if both accesses borrow the same type.
func (Query2[A, B, RA, RB]) Validate() error {
	var a A
	var b B
	return checkDistinct(a.ComponentType(), b.ComponentType())
}

func (Query2[A, B, RA, RB]) String() string {
	var a A
	var b B
	return describeQuery("Query2", a, b)
}

// Query3 borrows three distinct components.
type Query3[A Access[RA], B Access[RB], C Access[RC], RA, RB, RC any] struct{}

// Call checks out all three components and invokes fn with them in
// declaration order. If any is missing, fn is not called, nothing is written
// back and Call returns false.
//
// Calling a query that fails Validate is undefined.
func (Query3[A, B, C, RA, RB, RC]) Call(e *EntityData, fn func(RA, RB, RC)) bool {
	var a A
	var b B
	var c C

	la, ok := a.checkout(e)
	if !ok {
		return false
	}
	lb, ok := b.checkout(e)
	if !ok {
		return false
	}
	lc, ok := c.checkout(e)
	if !ok {
		return false
	}
	defer func() {
		la.reconcile()
		lb.reconcile()
		lc.reconcile()
	}()

	fn(la.ref, lb.ref, lc.ref)
	return true
}

// Validate reports ErrDuplicateComponent if any two accesses borrow the same type.
func (Query3[A, B, C, RA, RB, RC]) Validate() error {
	var a A
	var b B
	var c C
	return checkDistinct(a.ComponentType(), b.ComponentType(), c.ComponentType())
}

func (Query3[A, B, C, RA, RB, RC]) String() string {
	var a A
	var b B
	var c C
	return describeQuery("Query3", a, b, c)
}

func checkDistinct(types ...*ComponentType) error {
	for i := range types {
		for j := i + 1; j < len(types); j++ {
			if types[i] == types[j] {
				return fmt.Errorf("%w: %s", ErrDuplicateComponent, types[i].Name)
			}
		}
	}
	return nil
}

func describeQuery(kind string, accesses ...any) string {
	parts := make([]string, len(accesses))
	for i, access := range accesses {
		parts[i] = fmt.Sprint(access)
	}
	return kind + "[" + strings.Join(parts, " ") + "]"
}
