package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/procgen"
)

// NewNPC spawns a wandering character tracked on level's navigation grid.
// It is owned by the level root when one exists.
func NewNPC(w *ecs.World, level procgen.Level, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadNPCSpec()
	if err != nil {
		return 0, fmt.Errorf("npc: load spec: %w", err)
	}

	npc := ecs.CreateEntity(w)
	if err := ecs.Add(w, npc, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("npc: add name: %w", err)
	}
	if err := ecs.Add(w, npc, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Z: 1}); err != nil {
		return 0, fmt.Errorf("npc: add transform: %w", err)
	}
	if err := ecs.Add(w, npc, component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: level}); err != nil {
		return 0, fmt.Errorf("npc: add proc generated: %w", err)
	}
	if err := ecs.Add(w, npc, component.PathfindingComponent.Kind(), &component.Pathfinding{}); err != nil {
		return 0, fmt.Errorf("npc: add pathfinding: %w", err)
	}

	arrive := spec.ArriveRadius
	if arrive <= 0 {
		arrive = 1
	}
	if err := ecs.Add(w, npc, component.MoverComponent.Kind(), &component.Mover{Speed: spec.MoveSpeed, Arrive: arrive}); err != nil {
		return 0, fmt.Errorf("npc: add mover: %w", err)
	}

	if spec.Script != "" {
		repath := spec.RepathFrames
		if repath <= 0 {
			repath = 120
		}
		if err := ecs.Add(w, npc, component.AIGoalComponent.Kind(), &component.AIGoal{
			Script:       spec.Script,
			RepathFrames: repath,
			Seed:         int(uint32(npc)),
		}); err != nil {
			return 0, fmt.Errorf("npc: add ai goal: %w", err)
		}
	}

	if root, ok := FindLevel(w, level); ok {
		if err := w.SetParent(npc, root); err != nil {
			return 0, fmt.Errorf("npc: set parent: %w", err)
		}
	}
	return npc, nil
}
