package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/procgen"
)

// AgentPosSystem projects the transforms of proc-generated characters into
// grid-local tile coordinates. Only transforms written since the previous
// sync are projected, unless the anchor moved, in which case every agent is.
type AgentPosSystem struct {
	state      *ProcGen
	lastTick   uint64
	lastAnchor procgen.ChunkCoord
	synced     bool
}

func NewAgentPosSystem(state *ProcGen) *AgentPosSystem {
	return &AgentPosSystem{state: state}
}

func (s *AgentPosSystem) Update(w *ecs.World) {
	if s == nil || s.state == nil || w == nil {
		return
	}
	if !s.state.Timer.JustFinished() {
		return
	}

	anchor, ok := s.state.Controller().Min()
	if !ok {
		return
	}
	tile := s.state.requireTileData("agent pos").TileSize()

	all := !s.synced || anchor != s.lastAnchor
	since := s.lastTick
	s.lastTick = w.ChangeTick()
	s.lastAnchor = anchor
	s.synced = true

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ProcGeneratedComponent.Kind(), func(e ecs.Entity, t *component.Transform, pg *component.ProcGenerated) {
		if pg.Level != s.state.Level {
			return
		}
		if !all && !ecs.ChangedSince(w, e, component.TransformComponent.Kind(), since) {
			return
		}
		p := procgen.GridLocalTile(procgen.Vec2{X: t.X, Y: t.Y}, anchor, tile)
		if err := ecs.Add(w, e, component.AgentPosComponent.Kind(), &component.AgentPos{X: p.X, Y: p.Y}); err != nil {
			panic("agent pos: update: " + err.Error())
		}
	})
}
