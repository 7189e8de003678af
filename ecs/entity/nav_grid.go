package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
)

// NewNavGridSettings returns the settings of a level navigation grid: the
// full proc-gen area, split into chunk-sized regions, impassable until built.
func NewNavGridSettings() nav.Settings {
	return nav.NewSettings2D(procgen.GridSize, procgen.GridSize).
		ChunkSize(procgen.ChunkSize).
		DefaultImpassable().
		Build()
}

// NewNavGrid spawns the navigation grid of level with its origin at the
// anchor chunk's world origin.
func NewNavGrid(w *ecs.World, level procgen.Level, root ecs.Entity, anchor procgen.ChunkCoord, tile procgen.TileSize) (ecs.Entity, error) {
	origin := procgen.ChunkOrigin(anchor, tile)

	grid := ecs.CreateEntity(w)
	if err := ecs.Add(w, grid, component.NavGridComponent.Kind(), &component.NavGrid{
		Level:  level,
		Anchor: anchor,
		Grid:   nav.New(NewNavGridSettings()),
	}); err != nil {
		return 0, fmt.Errorf("nav grid: add grid: %w", err)
	}
	if err := ecs.Add(w, grid, component.TransformComponent.Kind(), &component.Transform{X: origin.X, Y: origin.Y}); err != nil {
		return 0, fmt.Errorf("nav grid: add transform: %w", err)
	}
	if ecs.IsAlive(w, root) {
		if err := w.SetParent(grid, root); err != nil {
			return 0, fmt.Errorf("nav grid: set parent: %w", err)
		}
	}
	return grid, nil
}

// FindNavGrid returns the live navigation grid of level.
func FindNavGrid(w *ecs.World, level procgen.Level) (ecs.Entity, *component.NavGrid, bool) {
	var (
		found ecs.Entity
		grid  *component.NavGrid
	)
	ecs.ForEach(w, component.NavGridComponent.Kind(), func(e ecs.Entity, g *component.NavGrid) {
		if grid == nil && g.Level == level {
			found, grid = e, g
		}
	})
	return found, grid, grid != nil
}
