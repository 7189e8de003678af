package system

import (
	"log"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/procgen"
)

// Stats accumulates what the proc-gen systems reported.
type Stats struct {
	ChunksSpawned   int
	ChunksDespawned int
	GridRebuilds    int
	GridRespawns    int
	LoadedChunks    int
	Anchor          procgen.ChunkCoord
	HasAnchor       bool
}

// StatsSystem drains the world event queue into Stats. It runs last so it
// sees every event of the frame.
type StatsSystem struct {
	state   *ProcGen
	Stats   Stats
	Verbose bool
}

func NewStatsSystem(state *ProcGen) *StatsSystem {
	return &StatsSystem{state: state}
}

func (s *StatsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, ev := range w.Events().Drain() {
		switch data := ev.Data.(type) {
		case ecs.ChunkEvent:
			if ev.Type == ecs.EventChunkSpawned {
				s.Stats.ChunksSpawned++
			} else {
				s.Stats.ChunksDespawned++
			}
			if s.Verbose {
				log.Printf("chunks: %s %s %v", ev.Type, data.Level, data.Coord)
			}
		case ecs.NavGridEvent:
			s.Stats.GridRebuilds++
			if data.Respawned {
				s.Stats.GridRespawns++
			}
			if s.Verbose {
				log.Printf("nav grid: rebuilt %s anchor=%v respawned=%t", data.Level, data.Anchor, data.Respawned)
			}
		}
	}
	if s.state != nil {
		ctrl := s.state.Controller()
		s.Stats.LoadedChunks = ctrl.Len()
		s.Stats.Anchor, s.Stats.HasAnchor = ctrl.Min()
	}
}
