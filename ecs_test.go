package lightlab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	if len(ecs.entities) != 0 {
		t.Errorf("Expected entities to be empty, got %v", ecs.entities)
	}
	if ecs.entityIdCounter != 0 {
		t.Errorf("Expected entityIdCounter to be 0, got %v", ecs.entityIdCounter)
	}
	if ecs.componentIdCounter != 0 {
		t.Errorf("Expected componentIdCounter to be 0, got %v", ecs.componentIdCounter)
	}
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()

	type TestComponent struct {
		x string
	}

	id1 := ecs.addEntity()
	id2 := ecs.addEntity(TestComponent{x: "test"})

	assert.NotEqual(t, id1, id2)
	assert.True(t, ecs.hasEntity(id1))
	assert.True(t, ecs.hasEntity(id2))
	assert.Empty(t, ecs.allComponents(id1))

	comps := ecs.allComponents(id2)
	require.Len(t, comps, 1)
	assert.Equal(t, "test", comps[0].(*TestComponent).x)
}

func TestEcs_PointerComponentsAreShared(t *testing.T) {
	ecs := MakeEcs()

	type Counter struct{ n int }
	c := &Counter{n: 1}
	eid := ecs.addEntity(c)

	stored, ok := lookup[Counter](&ecs, componentIdOf[Counter](&ecs), eid)
	require.True(t, ok)
	assert.Same(t, c, stored)

	stored.n = 5
	assert.Equal(t, 5, c.n)
}

func TestEcs_ValueComponentsAreCopied(t *testing.T) {
	ecs := MakeEcs()

	type Counter struct{ n int }
	c := Counter{n: 1}
	eid := ecs.addEntity(c)

	stored, ok := lookup[Counter](&ecs, componentIdOf[Counter](&ecs), eid)
	require.True(t, ok)
	stored.n = 5
	assert.Equal(t, 1, c.n)
}

func TestEcs_AddRemoveComponents(t *testing.T) {
	ecs := MakeEcs()

	type A struct{}
	type B struct{ v int }

	eid := ecs.addEntity(A{})
	ecs.addComponents(eid, B{v: 2})
	assert.Len(t, ecs.allComponents(eid), 2)

	ecs.removeComponents(eid, B{})
	comps := ecs.allComponents(eid)
	require.Len(t, comps, 1)
	assert.IsType(t, &A{}, comps[0])

	// unknown entities are ignored
	ecs.addComponents(EntityId(999), B{})
	assert.False(t, ecs.hasEntity(999))
}

func TestEcs_RemoveEntity(t *testing.T) {
	ecs := MakeEcs()

	type A struct{}
	id1 := ecs.addEntity(A{})
	id2 := ecs.addEntity(A{})

	ecs.removeEntity(id1)
	assert.False(t, ecs.hasEntity(id1))
	assert.Equal(t, []EntityId{id2}, ecs.entitiesWith(componentIdOf[A](&ecs)))

	ecs.removeEntity(id1) // twice is fine
}

func TestEcs_ComponentIdsAreStable(t *testing.T) {
	ecs := MakeEcs()

	type A struct{}
	type B struct{}

	a1 := componentIdOf[A](&ecs)
	b := componentIdOf[B](&ecs)
	a2 := componentIdOf[A](&ecs)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
}
