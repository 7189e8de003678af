package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
)

// PathfindingSystem computes grid paths from each agent's tile to its goal.
// A path is recomputed when the goal changes or the level's grid was
// rebuilt; positions outside the grid simply yield no path.
type PathfindingSystem struct {
	state    *ProcGen
	lastTick uint64
}

func NewPathfindingSystem(state *ProcGen) *PathfindingSystem {
	return &PathfindingSystem{state: state}
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || ps.state == nil || w == nil {
		return
	}
	since := ps.lastTick
	defer func() { ps.lastTick = w.ChangeTick() }()

	gridEntity, grid, ok := entity.FindNavGrid(w, ps.state.Level)
	if !ok || grid.Grid == nil || !grid.Grid.Built() {
		return
	}
	td, ok := ps.state.Tiles.Get(ps.state.Level)
	if !ok {
		return
	}
	tile := td.TileSize()
	rebuilt := ecs.ChangedSince(w, gridEntity, component.NavGridComponent.Kind(), since)

	ecs.ForEach3(w, component.PathfindingComponent.Kind(), component.AgentPosComponent.Kind(), component.ProcGeneratedComponent.Kind(), func(e ecs.Entity, pf *component.Pathfinding, pos *component.AgentPos, pg *component.ProcGenerated) {
		if pg.Level != ps.state.Level || !pf.HasGoal {
			return
		}
		start := nav.Point{X: pos.X, Y: pos.Y}
		if !rebuilt && pf.Goal == pf.LastGoal && (pf.Failed || pf.Path != nil) {
			return
		}

		pf.LastStart = start
		pf.LastGoal = pf.Goal
		pf.Anchor = grid.Anchor
		pf.Next = 0
		path, found := grid.Grid.FindPath(start, pf.Goal)
		if !found {
			pf.Path = nil
			pf.Waypoints = nil
			pf.Failed = true
			return
		}
		pf.Failed = false
		pf.Path = path
		pf.Waypoints = make([]procgen.Vec2, len(path))
		for i, p := range path {
			pf.Waypoints[i] = procgen.TileCenter(procgen.TilePos{X: p.X, Y: p.Y}, grid.Anchor, tile)
		}
		// the first node is the agent's own tile
		if len(path) > 1 {
			pf.Next = 1
		}
	})
}
