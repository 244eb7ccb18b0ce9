package ecs_test

import (
	"testing"

	"github.com/plus3/campfire/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentTypeOf(t *testing.T) {
	pos := ecs.ComponentTypeOf[Position]()
	speed := ecs.ComponentTypeOf[Speed]()

	assert.Same(t, pos, ecs.ComponentTypeOf[Position]())
	assert.NotEqual(t, pos.Id, speed.Id)
	assert.Equal(t, "ecs_test.Position", pos.Name)
	assert.Equal(t, "ecs_test.Position", pos.String())
}

func TestComponentTypeOfRejectsReferenceKinds(t *testing.T) {
	assert.Panics(t, func() { ecs.ComponentTypeOf[*Position]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[map[string]int]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[chan int]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[func()]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[any]() })

	assert.NotPanics(t, func() { ecs.ComponentTypeOf[Score]() })
	assert.NotPanics(t, func() { ecs.ComponentTypeOf[string]() })
	assert.NotPanics(t, func() { ecs.ComponentTypeOf[[4]float32]() })
}

type rawTags []string

type loadout struct {
	Slots []int
}

type roster struct {
	Members [2]loadout
}

func TestComponentTypeOfRequiresClonerForReferenceData(t *testing.T) {
	assert.PanicsWithValue(t,
		"component type ecs_test.rawTags holds reference data and must implement Clone() ecs_test.rawTags",
		func() { ecs.ComponentTypeOf[rawTags]() },
	)
	assert.Panics(t, func() { ecs.ComponentTypeOf[loadout]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[roster]() })
	assert.Panics(t, func() { ecs.ComponentTypeOf[[]int]() })
	assert.Panics(t, func() { ecs.NewData(loadout{Slots: []int{1}}) })

	assert.NotPanics(t, func() { ecs.ComponentTypeOf[Tags]() })
	assert.NotPanics(t, func() { ecs.ComponentTypeOf[Inventory]() })
}

func TestNewData(t *testing.T) {
	data := ecs.NewData(Position{X: 1, Y: 2})

	assert.Same(t, ecs.ComponentTypeOf[Position](), data.Type)
	assert.Equal(t, Position{X: 1, Y: 2}, data.Value())
	assert.Equal(t, "ecs_test.Position{X:1 Y:2}", data.String())

	var empty ecs.Data
	assert.Nil(t, empty.Value())
	assert.Equal(t, "<nil>", empty.String())
}

func TestExtendAndGet(t *testing.T) {
	entity := ecs.NewEntityData()
	entity.Extend(
		ecs.NewData(Position{X: 3, Y: 4}),
		ecs.NewData(Name{Value: "Test Entity"}),
	)

	assert.Equal(t, 2, entity.Len())

	pos, ok := ecs.Get[Position](entity)
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, pos)

	name, ok := ecs.Get[Name](entity)
	require.True(t, ok)
	assert.Equal(t, "Test Entity", name.Value)

	// Absence is a plain false, not a failure
	speed, ok := ecs.Get[Speed](entity)
	assert.False(t, ok)
	assert.Equal(t, Speed{}, speed)
}

func TestExtendReplacesExistingType(t *testing.T) {
	entity := ecs.NewEntityData()
	entity.Extend(ecs.NewData(Score(1)))
	entity.Extend(ecs.NewData(Score(2)), ecs.NewData(Score(3)))

	assert.Equal(t, 1, entity.Len())
	score, ok := ecs.Get[Score](entity)
	require.True(t, ok)
	assert.Equal(t, Score(3), score)
}

func TestExtendCopiesPerEntity(t *testing.T) {
	shared := ecs.NewData(Inventory{Items: []string{"torch"}})

	a := ecs.NewEntityData()
	b := ecs.NewEntityData()
	a.Extend(shared)
	b.Extend(shared)

	ecs.NewSystem1[ecs.Write[Inventory]](func(inv *Inventory) {
		inv.Items[0] = "sword"
	}).Apply(a)

	invA, _ := ecs.Get[Inventory](a)
	invB, _ := ecs.Get[Inventory](b)
	assert.Equal(t, []string{"sword"}, invA.Items)
	assert.Equal(t, []string{"torch"}, invB.Items)
}

func TestExtendPanicsOnEmptyData(t *testing.T) {
	entity := ecs.NewEntityData()
	assert.Panics(t, func() { entity.Extend(ecs.Data{}) })
}

func TestInsertHasRemove(t *testing.T) {
	entity := ecs.NewEntityData()

	assert.False(t, ecs.Has[Health](entity))
	assert.False(t, ecs.Remove[Health](entity))

	ecs.Insert(entity, Health{Current: 50, Max: 100})
	assert.True(t, ecs.Has[Health](entity))

	ecs.Insert(entity, Health{Current: 75, Max: 100})
	health, ok := ecs.Get[Health](entity)
	require.True(t, ok)
	assert.Equal(t, 75, health.Current)
	assert.Equal(t, 1, entity.Len())

	assert.True(t, ecs.Remove[Health](entity))
	assert.False(t, ecs.Has[Health](entity))
	assert.Equal(t, 0, entity.Len())
}

func TestZeroValueEntityData(t *testing.T) {
	var entity ecs.EntityData

	assert.Equal(t, 0, entity.Len())
	assert.Empty(t, entity.Types())
	assert.False(t, ecs.Has[Position](&entity))
	assert.False(t, ecs.Remove[Position](&entity))

	ecs.Insert(&entity, Position{X: 1})
	pos, ok := ecs.Get[Position](&entity)
	require.True(t, ok)
	assert.Equal(t, float32(1), pos.X)
}

func TestGetReturnsCopy(t *testing.T) {
	entity := ecs.NewEntityData()
	ecs.Insert(entity, Inventory{Items: []string{"apple", "rope"}})

	inv, ok := ecs.Get[Inventory](entity)
	require.True(t, ok)
	inv.Items[0] = "rotten apple"

	stored, _ := ecs.Get[Inventory](entity)
	assert.Equal(t, []string{"apple", "rope"}, stored.Items)
}

func TestTypesOrderedById(t *testing.T) {
	// make sure ids exist in a known order
	nameType := ecs.ComponentTypeOf[Name]()
	healthType := ecs.ComponentTypeOf[Health]()

	entity := ecs.NewEntityData()
	ecs.Insert(entity, Health{Current: 1, Max: 1})
	ecs.Insert(entity, Name{Value: "x"})

	types := entity.Types()
	require.Len(t, types, 2)
	if nameType.Id < healthType.Id {
		assert.Equal(t, []*ecs.ComponentType{nameType, healthType}, types)
	} else {
		assert.Equal(t, []*ecs.ComponentType{healthType, nameType}, types)
	}
}

func TestEntityDataString(t *testing.T) {
	entity := ecs.NewEntityData()
	assert.Equal(t, "[]", entity.String())

	ecs.Insert(entity, Tag("hero"))
	assert.Equal(t, "[ecs_test.Tag(hero)]", entity.String())
}

func TestEntityDataDump(t *testing.T) {
	entity := ecs.NewEntityData()
	ecs.Insert(entity, Position{X: 1, Y: 2})
	ecs.Insert(entity, Inventory{Items: []string{"torch"}})

	dump := entity.Dump()
	assert.Contains(t, dump, "(ecs_test.Position)")
	assert.Contains(t, dump, "X: (float32) 1")
	assert.Contains(t, dump, "(ecs_test.Inventory)")
	assert.Contains(t, dump, "\"torch\"")
}
