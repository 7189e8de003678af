package system

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
)

// PassabilityContext is what a Passability policy may consult.
type PassabilityContext struct {
	World    *ecs.World
	Level    procgen.Level
	Anchor   procgen.ChunkCoord
	TileData *procgen.TileData
	Chunks   []procgen.ChunkCoord
}

// Passability fills a navigation grid and builds it.
type Passability func(grid *nav.Grid, ctx PassabilityContext)

// FullPassable marks every cell passable at cost 1.
func FullPassable(grid *nav.Grid, _ PassabilityContext) {
	grid.Fill(nav.Passable(1))
	grid.Build()
}

// LoadedChunksPassable marks only cells covered by a loaded chunk passable.
func LoadedChunksPassable(grid *nav.Grid, ctx PassabilityContext) {
	grid.Fill(nav.Impassable)
	for _, c := range ctx.Chunks {
		ox := (c.X - ctx.Anchor.X) * procgen.ChunkSize
		oy := (c.Y - ctx.Anchor.Y) * procgen.ChunkSize
		for y := oy; y < oy+procgen.ChunkSize; y++ {
			for x := ox; x < ox+procgen.ChunkSize; x++ {
				grid.SetNav(nav.Point{X: x, Y: y}, nav.Passable(1))
			}
		}
	}
	grid.Build()
}

// NavGridSystem keeps one navigation grid per level anchored at the minimum
// loaded chunk, rebuilding it when the loaded chunk set changed.
type NavGridSystem struct {
	state   *ProcGen
	policy  Passability
	lastGen uint64
	seen    bool
}

func NewNavGridSystem(state *ProcGen, policy Passability) *NavGridSystem {
	if policy == nil {
		policy = FullPassable
	}
	return &NavGridSystem{state: state, policy: policy}
}

func (s *NavGridSystem) Update(w *ecs.World) {
	if s == nil || s.state == nil || w == nil {
		return
	}
	if !s.state.Timer.JustFinished() {
		return
	}

	ctrl := s.state.Controller()
	gen := ctrl.Generation()
	if s.seen && gen == s.lastGen {
		return
	}
	s.lastGen, s.seen = gen, true

	anchor, ok := ctrl.Min()
	if !ok {
		return
	}
	td := s.state.requireTileData("nav grid")

	e, grid, found := entity.FindNavGrid(w, s.state.Level)
	respawned := false
	if found && grid.Anchor != anchor {
		ecs.DestroyEntity(w, e)
		found = false
	}
	if !found {
		root, _ := entity.FindLevel(w, s.state.Level)
		var err error
		e, err = entity.NewNavGrid(w, s.state.Level, root, anchor, td.TileSize())
		if err != nil {
			panic(fmt.Errorf("nav grid: spawn at %v: %w", anchor, err))
		}
		grid, _ = ecs.Get(w, e, component.NavGridComponent.Kind())
		respawned = true
	}

	s.policy(grid.Grid, PassabilityContext{
		World:    w,
		Level:    s.state.Level,
		Anchor:   anchor,
		TileData: td,
		Chunks:   ctrl.Coords(),
	})
	ecs.MarkChanged(w, e, component.NavGridComponent.Kind())

	w.Events().Push(ecs.Event{
		Type: ecs.EventNavGridRebuilt,
		Data: ecs.NavGridEvent{Entity: e, Level: s.state.Level, Anchor: anchor, Respawned: respawned},
	})
}
