package ecs

import "github.com/milk9111/overworld/ecs/component"

// World owns entities, their components and the parent/child ownership graph.
//
// Ownership is stored as two id-keyed tables rather than pointers, so
// destroying a parent cascades by key lookup.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	parents  map[entityID]Entity
	children map[entityID][]Entity
	events   EventQueue

	changeTick uint64
	frame      uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		parents:  make(map[entityID]Entity),
		children: make(map[entityID][]Entity),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity, its components and all of its descendants.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}

	kids := w.children[e.id()]
	delete(w.children, e.id())
	for _, child := range kids {
		w.DestroyEntity(child)
	}

	if parent, ok := w.parents[e.id()]; ok {
		w.detach(parent, e)
	}

	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// SetParent makes child owned by parent. A child has at most one parent.
func (w *World) SetParent(child, parent Entity) error {
	if w == nil || !w.IsAlive(child) || !w.IsAlive(parent) {
		return component.ErrEntityNotAlive
	}
	if old, ok := w.parents[child.id()]; ok {
		w.detach(old, child)
	}
	w.parents[child.id()] = parent
	w.children[parent.id()] = append(w.children[parent.id()], child)
	return nil
}

// Parent returns the owner of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	if w == nil || !w.IsAlive(e) {
		return 0, false
	}
	p, ok := w.parents[e.id()]
	return p, ok
}

// Children returns the direct children of e.
func (w *World) Children(e Entity) []Entity {
	if w == nil || !w.IsAlive(e) {
		return nil
	}
	kids := w.children[e.id()]
	return append([]Entity(nil), kids...)
}

func (w *World) detach(parent, child Entity) {
	delete(w.parents, child.id())
	kids := w.children[parent.id()]
	for i, k := range kids {
		if k == child {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(w.children, parent.id())
		return
	}
	w.children[parent.id()] = kids
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s := w.storeFor(kind.ID())
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// Query returns entities carrying every kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.storeFor(k.ID())
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	return intersect(sets...)
}

// ChangeTick returns the most recent change tick handed out by the world.
func (w *World) ChangeTick() uint64 {
	if w == nil {
		return 0
	}
	return w.changeTick
}

// Frame returns the number of completed scheduler updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) nextChangeTick() uint64 {
	w.changeTick++
	return w.changeTick
}

func (w *World) storeFor(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	return w.stores[id]
}

func (w *World) ensureStore(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) endFrame() {
	w.frame++
	w.events.flush()
}
