package ecs

import "github.com/milk9111/overworld/ecs/component"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func First(w *World, kind component.Kind) (Entity, bool) {
	return w.First(kind)
}

// Add attaches value to e, replacing any previous value of the same kind.
// Every call stamps the component with a fresh change tick.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.ensureStore(kind.ID()).Set(e, value, w.nextChangeTick())
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.storeFor(kind.ID()).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.storeFor(kind.ID()).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value := w.storeFor(kind.ID()).Get(e)
	if value == nil {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// MarkChanged stamps a component that was mutated in place.
func MarkChanged[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := w.storeFor(kind.ID())
	if !s.Has(e) {
		return false
	}
	return s.Touch(e, w.nextChangeTick())
}

// ChangedTick returns the change tick of the component's last write.
func ChangedTick[T any](w *World, e Entity, kind component.ComponentKind[T]) (uint64, bool) {
	return w.storeFor(kind.ID()).Stamp(e)
}

// ChangedSince reports whether the component was written after tick.
func ChangedSince[T any](w *World, e Entity, kind component.ComponentKind[T], tick uint64) bool {
	stamp, ok := ChangedTick(w, e, kind)
	return ok && stamp > tick
}

func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return w.storeFor(kind.ID()).Len()
}

// ForEach visits every entity carrying kind. The entity list is snapshotted,
// so fn may add, remove or destroy freely.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.storeFor(kind.ID())
	if s == nil || fn == nil {
		return
	}
	for _, e := range snapshot(s.dense) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	for _, e := range intersect(w.storeFor(ka.ID()), w.storeFor(kb.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if fn == nil {
		return
	}
	for _, e := range intersect(w.storeFor(ka.ID()), w.storeFor(kb.ID()), w.storeFor(kc.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if fn == nil {
		return
	}
	for _, e := range intersect(w.storeFor(ka.ID()), w.storeFor(kb.ID()), w.storeFor(kc.ID()), w.storeFor(kd.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
