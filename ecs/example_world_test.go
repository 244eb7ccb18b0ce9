package ecs_test

import (
	"fmt"

	"github.com/plus3/campfire/ecs"
)

type Transform struct {
	X, Y float32
}

type Motion struct {
	DX, DY float32
}

// ExampleWorld shows the whole lifecycle: create entities, seed their
// components, register systems and advance the world tick by tick.
func ExampleWorld() {
	world := ecs.NewWorld()

	ship := world.NewEntity()
	world.Entity(ship).Extend(
		ecs.NewData(Transform{X: 0, Y: 0}),
		ecs.NewData(Motion{DX: 4, DY: 7}),
	)

	// A rock has a transform but never moves
	rock := world.NewEntity()
	world.Entity(rock).Extend(ecs.NewData(Transform{X: 10, Y: 10}))

	world.AddSystem(
		ecs.NewSystem2[ecs.Write[Transform], ecs.Read[Motion]](func(t *Transform, m Motion) {
			t.X += m.DX
			t.Y += m.DY
		}),
		ecs.NewSystem1[ecs.Write[Motion]](func(m *Motion) {
			m.DX += 1
			m.DY -= 1
		}),
	)

	for tick := 1; tick <= 3; tick++ {
		world.Run()
		for id, entity := range world.Entities() {
			fmt.Printf("tick %d entity %d %v\n", tick, id, entity)
		}
	}

	// Output:
	// tick 1 entity 0 [ecs_test.Transform{X:4 Y:7}, ecs_test.Motion{DX:5 DY:6}]
	// tick 1 entity 1 [ecs_test.Transform{X:10 Y:10}]
	// tick 2 entity 0 [ecs_test.Transform{X:9 Y:13}, ecs_test.Motion{DX:6 DY:5}]
	// tick 2 entity 1 [ecs_test.Transform{X:10 Y:10}]
	// tick 3 entity 0 [ecs_test.Transform{X:15 Y:18}, ecs_test.Motion{DX:7 DY:4}]
	// tick 3 entity 1 [ecs_test.Transform{X:10 Y:10}]
}
