package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/procgen"
)

// NewLevel creates the root entity of a level kind. Chunks, the navigation
// grid and the level's NPCs are parented to it.
func NewLevel(w *ecs.World, level procgen.Level) (ecs.Entity, error) {
	root := ecs.CreateEntity(w)
	if err := ecs.Add(w, root, component.LevelRootComponent.Kind(), &component.LevelRoot{Level: level}); err != nil {
		return 0, fmt.Errorf("level: add level root: %w", err)
	}
	if err := ecs.Add(w, root, component.NameComponent.Kind(), &component.Name{Value: level.String()}); err != nil {
		return 0, fmt.Errorf("level: add name: %w", err)
	}
	return root, nil
}

// FindLevel returns the root entity of level, if one is live.
func FindLevel(w *ecs.World, level procgen.Level) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.LevelRootComponent.Kind(), func(e ecs.Entity, root *component.LevelRoot) {
		if !ok && root.Level == level {
			found, ok = e, true
		}
	})
	return found, ok
}

// SpawnLevel creates the level root and the NPCs listed in spec.
func SpawnLevel(w *ecs.World, spec *prefabs.LevelSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("level: nil spec")
	}
	level, err := spec.Level()
	if err != nil {
		return 0, fmt.Errorf("level: %w", err)
	}
	root, err := NewLevel(w, level)
	if err != nil {
		return 0, err
	}
	for i, npc := range spec.NPCs {
		if _, err := NewNPC(w, level, npc.X, npc.Y); err != nil {
			return 0, fmt.Errorf("level: npc %d: %w", i, err)
		}
	}
	return root, nil
}

// DespawnLevel destroys a level root together with everything it owns.
// Callers clear the level's chunk controller alongside.
func DespawnLevel(w *ecs.World, root ecs.Entity) bool {
	if _, ok := ecs.Get(w, root, component.LevelRootComponent.Kind()); !ok {
		return false
	}
	return ecs.DestroyEntity(w, root)
}
