package lightlab

import (
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type componentId uint32
type set[T comparable] = map[T]struct{}

// Ecs stores components as pointers keyed by component type. Queries hand
// out those pointers, so writes through them are visible to every system.
type Ecs struct {
	entities map[EntityId]set[componentId]
	storage  map[componentId]map[EntityId]any

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentIdCounter     componentId
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     map[componentId]reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		entities:           make(map[EntityId]set[componentId]),
		storage:            make(map[componentId]map[EntityId]any),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	entityId := ecs.nextEntityId()
	return ecs.insertEntity(entityId, components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	if _, ok := ecs.entities[entityId]; !ok {
		ecs.entities[entityId] = make(set[componentId])
	}
	ecs.addComponents(entityId, components...)
	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	comps, ok := ecs.entities[entityId]
	if !ok {
		return
	}
	for compId := range comps {
		delete(ecs.storage[compId], entityId)
	}
	delete(ecs.entities, entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	comps, ok := ecs.entities[entityId]
	if !ok {
		return
	}
	for _, component := range components {
		compType, ptr := componentPointer(component)
		compId := ecs.getComponentId(compType)
		if _, ok := ecs.storage[compId]; !ok {
			ecs.storage[compId] = make(map[EntityId]any)
		}
		ecs.storage[compId][entityId] = ptr
		comps[compId] = struct{}{}
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	comps, ok := ecs.entities[entityId]
	if !ok {
		return
	}
	for _, component := range components {
		compType, _ := componentPointer(component)
		compId := ecs.getComponentId(compType)
		delete(ecs.storage[compId], entityId)
		delete(comps, compId)
	}
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entities[entityId]
	return ok
}

func (ecs *Ecs) allComponents(entityId EntityId) []any {
	comps := ecs.entities[entityId]
	ids := make([]componentId, 0, len(comps))
	for id := range comps {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	res := make([]any, 0, len(ids))
	for _, id := range ids {
		res = append(res, ecs.storage[id][entityId])
	}
	return res
}

// entitiesWith returns the ids holding compId in ascending order so that
// iteration is deterministic across frames.
func (ecs *Ecs) entitiesWith(compId componentId) []EntityId {
	store := ecs.storage[compId]
	ids := make([]EntityId, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()
	ecs.entityIdCounter++
	return ecs.entityIdCounter
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[componentType]; ok {
		return id
	}
	id := ecs.componentIdCounter
	ecs.componentIdCounter++
	ecs.componentTypeIdMap[componentType] = id
	ecs.componentIdTypeMap[id] = componentType
	return id
}

// componentPointer returns the component's value type and a pointer to it.
// Values are copied into fresh storage; pointers are kept as given.
func componentPointer(component any) (reflect.Type, any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		return val.Type().Elem(), component
	}
	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)
	return val.Type(), ptr.Interface()
}
