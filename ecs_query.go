package lightlab

import (
	"reflect"
)

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeOf((*T)(nil)).Elem())
}

func lookup[T any](ecs *Ecs, id componentId, eid EntityId) (*T, bool) {
	c, ok := ecs.storage[id][eid]
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// Map calls m for every entity with an A. Returning false stops iteration.
func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := componentIdOf[A](q.ecs)
	for _, eid := range q.ecs.entitiesWith(id1) {
		a, _ := lookup[A](q.ecs, id1, eid)
		if !m(eid, a) {
			return
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1 := componentIdOf[A](q.ecs)
	id2 := componentIdOf[B](q.ecs)
	for _, eid := range q.ecs.entitiesWith(id1) {
		b, ok := lookup[B](q.ecs, id2, eid)
		if !ok {
			continue
		}
		a, _ := lookup[A](q.ecs, id1, eid)
		if !m(eid, a, b) {
			return
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	id1 := componentIdOf[A](q.ecs)
	id2 := componentIdOf[B](q.ecs)
	id3 := componentIdOf[C](q.ecs)
	for _, eid := range q.ecs.entitiesWith(id1) {
		b, ok := lookup[B](q.ecs, id2, eid)
		if !ok {
			continue
		}
		c, ok := lookup[C](q.ecs, id3, eid)
		if !ok {
			continue
		}
		a, _ := lookup[A](q.ecs, id1, eid)
		if !m(eid, a, b, c) {
			return
		}
	}
}

// First returns the first entity with an A, if any.
func (q Query1[A]) First() (EntityId, *A, bool) {
	var (
		found EntityId
		comp  *A
	)
	q.Map(func(eid EntityId, a *A) bool {
		found, comp = eid, a
		return false
	})
	return found, comp, comp != nil
}
