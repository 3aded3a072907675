package ecs

import "github.com/milk9111/robotboss/ecs/component"

// World owns entities and their component columns.
type World struct {
	gens  []generation
	alive []bool
	free  []entityID
	count int

	stores map[component.ComponentID]store
	events EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		// slot 0 is reserved so the zero Entity is never valid
		gens:   make([]generation, 1),
		alive:  make([]bool, 1),
		stores: make(map[component.ComponentID]store),
	}
}

// CreateEntity allocates a new entity, reusing a freed slot when possible.
func CreateEntity(w *World) Entity {
	var id entityID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = entityID(len(w.gens))
		w.gens = append(w.gens, 0)
		w.alive = append(w.alive, false)
	}
	w.alive[id] = true
	w.count++
	return makeEntity(id, w.gens[id])
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false for stale or unknown handles.
func DestroyEntity(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.remove(id)
	}
	w.alive[id] = false
	w.gens[id]++
	w.free = append(w.free, id)
	w.count--
	return true
}

func IsAlive(w *World, e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	id := e.id()
	return int(id) < len(w.gens) && w.alive[id] && w.gens[id] == e.generation()
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.count)
	for id := 1; id < len(w.gens); id++ {
		if w.alive[id] {
			out = append(out, makeEntity(entityID(id), w.gens[id]))
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func column[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}
