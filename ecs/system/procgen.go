package system

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/procgen"
)

// ProcGen is the state the proc-gen systems of one level kind share: the
// chunk controllers, loaded tile data, and the timer gating grid rebuilds
// and agent sync.
type ProcGen struct {
	Level       procgen.Level
	Controllers *procgen.Controllers
	Tiles       *procgen.TileDataStore
	Timer       *procgen.Timer
	Warner      *procgen.Warner
}

func NewProcGen(level procgen.Level, tiles *procgen.TileDataStore) *ProcGen {
	if tiles == nil {
		tiles = procgen.NewTileDataStore()
	}
	return &ProcGen{
		Level:       level,
		Controllers: procgen.NewControllers(level),
		Tiles:       tiles,
		Timer:       procgen.NewTimer(procgen.SyncInterval),
		Warner:      procgen.DefaultWarner,
	}
}

// Controller returns the chunk controller of the tracked level.
func (p *ProcGen) Controller() *procgen.ChunkController {
	return p.Controllers.For(p.Level)
}

// requireTileData returns the tile data of the tracked level and panics
// without it: the level must be configured before its systems run.
func (p *ProcGen) requireTileData(subsystem string) *procgen.TileData {
	td, err := p.Tiles.Require(p.Level)
	if err != nil {
		panic(fmt.Errorf("%s: %w", subsystem, err))
	}
	return td
}

func (p *ProcGen) warnOnce(msg string) {
	if p.Warner != nil {
		p.Warner.Once(msg)
		return
	}
	procgen.WarnOnce(msg)
}

// TimerSystem advances the shared proc-gen timer by one fixed step.
type TimerSystem struct {
	state *ProcGen
}

func NewTimerSystem(state *ProcGen) *TimerSystem {
	return &TimerSystem{state: state}
}

func (s *TimerSystem) Update(_ *ecs.World) {
	if s == nil || s.state == nil || s.state.Timer == nil {
		return
	}
	s.state.Timer.Tick(procgen.TickDuration)
}
