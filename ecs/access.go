package ecs

// Access selects how a query borrows one component type. R is the type the
// callback receives: the component value for Read, a pointer for Write.
//
// The family is closed; Read and Write are its only members.
type Access[R any] interface {
	// ComponentType returns the component type being borrowed.
	ComponentType() *ComponentType
	// Mutable reports whether the borrowed value is written back.
	Mutable() bool

	checkout(e *EntityData) (lease[R], bool)
}

// lease is a component checked out of an entity for the extent of one
// callback. Checking out never modifies the entity; only reconcile does.
type lease[R any] struct {
	ref    R
	commit func()
}

func (l lease[R]) reconcile() {
	if l.commit != nil {
		l.commit()
	}
}

// Read borrows a T for reading. The callback receives a copy of the stored
// value, so the entity is never changed by a Read.
type Read[T any] struct{}

func (Read[T]) ComponentType() *ComponentType {
	return ComponentTypeOf[T]()
}

func (Read[T]) Mutable() bool {
	return false
}

func (Read[T]) String() string {
	return "Read[" + ComponentTypeOf[T]().Name + "]"
}

func (Read[T]) checkout(e *EntityData) (lease[T], bool) {
	s, ok := e.lookup(ComponentTypeOf[T]().Id)
	if !ok {
		return lease[T]{}, false
	}
	return lease[T]{ref: recoverValue[T](s)}, true
}

// Write borrows a T for reading and writing. The callback receives a pointer
// to a private copy; once the callback returns the copy is stored back as
// the entity's T, replacing whatever is there.
type Write[T any] struct{}

func (Write[T]) ComponentType() *ComponentType {
	return ComponentTypeOf[T]()
}

func (Write[T]) Mutable() bool {
	return true
}

func (Write[T]) String() string {
	return "Write[" + ComponentTypeOf[T]().Name + "]"
}

func (Write[T]) checkout(e *EntityData) (lease[*T], bool) {
	s, ok := e.lookup(ComponentTypeOf[T]().Id)
	if !ok {
		return lease[*T]{}, false
	}

	value := recoverValue[T](s)
	return lease[*T]{
		ref: &value,
		commit: func() {
			e.put(newSlot(value))
		},
	}, true
}
