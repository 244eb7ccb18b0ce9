package ecs

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// World owns every entity and every system, and drives ticks.
// The zero value is an empty world ready to use.
type World struct {
	systems     []System
	systemStats []*systemStatsInternal
	entities    []*EntityData
	ticks       int64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		systems:  make([]System, 0),
		entities: make([]*EntityData, 0),
	}
}

// NewEntity appends an empty entity and returns its handle. Handles are
// issued sequentially starting at 0.
func (w *World) NewEntity() EntityId {
	id := EntityId(len(w.entities))
	w.entities = append(w.entities, NewEntityData())
	return id
}

// Entity returns the store of the given entity for direct inspection or
// seeding. It panics if id was not issued by this world.
func (w *World) Entity(id EntityId) *EntityData {
	if id.Index() >= len(w.entities) {
		panic(fmt.Sprintf("entity %d out of range (world has %d entities)", id, len(w.entities)))
	}
	return w.entities[id]
}

// Len returns the number of entities in the world.
func (w *World) Len() int {
	return len(w.entities)
}

// Entities returns an iterator over all entities in creation order.
func (w *World) Entities() iter.Seq2[EntityId, *EntityData] {
	return func(yield func(EntityId, *EntityData) bool) {
		for idx, entity := range w.entities {
			if !yield(EntityId(idx), entity) {
				return
			}
		}
	}
}

// AddSystem appends systems to the world. Systems run in the order they
// were added.
func (w *World) AddSystem(systems ...System) {
	for _, system := range systems {
		if system == nil {
			panic("cannot add a nil system")
		}

		w.systems = append(w.systems, system)
		w.systemStats = append(w.systemStats, &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		})
	}
}

// Systems returns a copy of the registered systems in execution order.
func (w *World) Systems() []System {
	return slices.Clone(w.systems)
}

// Run advances the world by one tick: each system, in registration order,
// is applied to every entity, in creation order, before the next system
// starts. Changes written by a system are visible to the systems after it
// within the same tick.
func (w *World) Run() {
	entities := w.entities

	for i, system := range w.systems {
		start := time.Now()
		for _, entity := range entities {
			system.Apply(entity)
		}
		w.systemStats[i].record(time.Since(start))
	}

	w.ticks++
}
