package ecs

// SparseSet is a cache-friendly storage for components keyed by Entity ID.
// It stores components as `any` so one World can hold every component kind.
// Each entry also carries the change tick of its last write.
type SparseSet struct {
	dense  []Entity
	values []any
	stamps []uint64
	sparse []int
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has returns true if the entity exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Stamp returns the change tick recorded for e.
func (s *SparseSet) Stamp(e Entity) (uint64, bool) {
	idx, ok := s.index(e)
	if !ok {
		return 0, false
	}
	return s.stamps[idx], true
}

// Touch moves the change tick of e without replacing its value.
func (s *SparseSet) Touch(e Entity, tick uint64) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.stamps[idx] = tick
	return true
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any, tick uint64) {
	if s == nil || !e.Valid() {
		return
	}
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		s.stamps[idx] = tick
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if old := s.sparse[id-1]; old >= 0 && old < len(s.dense) && s.dense[old].id() == e.id() {
		// A stale generation still occupies the slot.
		s.removeAt(old)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.stamps = append(s.stamps, tick)
	s.sparse[id-1] = len(s.dense) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *SparseSet) removeAt(idx int) {
	last := len(s.dense) - 1
	removed := s.dense[idx]
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.stamps[idx] = s.stamps[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.stamps = s.stamps[:last]
	s.sparse[removed.id()-1] = -1
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the dense entity list. Callers must not mutate it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

// Values returns the dense component list.
func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.values
}
