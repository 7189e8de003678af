package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/procgen"
)

// ChunkStreamerSystem keeps the chunks around the viewpoint spawned and
// despawns chunks that drift out of range.
type ChunkStreamerSystem struct {
	state *ProcGen
	root  ecs.Entity
}

func NewChunkStreamerSystem(state *ProcGen) *ChunkStreamerSystem {
	return &ChunkStreamerSystem{state: state}
}

func (s *ChunkStreamerSystem) Update(w *ecs.World) {
	if s == nil || s.state == nil || w == nil {
		return
	}

	cam, ok := w.First(component.CameraTagComponent.Kind())
	if !ok {
		return
	}
	view, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return
	}

	td := s.state.requireTileData("chunk streamer")
	tile := td.TileSize()
	viewpoint := procgen.Vec2{X: view.X, Y: view.Y}

	if _, ok := td.Masks(); ok {
		s.spawn(w, viewpoint, tile)
	} else {
		s.state.warnOnce(procgen.LevelMissingOptionalTileData)
	}
	s.despawn(w, viewpoint, tile)
}

func (s *ChunkStreamerSystem) spawn(w *ecs.World, viewpoint procgen.Vec2, tile procgen.TileSize) {
	ctrl := s.state.Controller()
	root := s.levelRoot(w)
	for _, coord := range procgen.RenderWindow(procgen.ViewpointChunk(viewpoint, tile)) {
		if !ctrl.Insert(coord) {
			continue
		}
		chunk, err := entity.NewChunk(w, s.state.Level, root, coord, tile, procgen.PlaceholderTextureIndex)
		if err != nil {
			panic(fmt.Errorf("chunk streamer: spawn %v: %w", coord, err))
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventChunkSpawned,
			Data: ecs.ChunkEvent{Entity: chunk, Level: s.state.Level, Coord: coord},
		})
	}
}

func (s *ChunkStreamerSystem) despawn(w *ecs.World, viewpoint procgen.Vec2, tile procgen.TileSize) {
	ctrl := s.state.Controller()
	from := cp.Vector{X: viewpoint.X, Y: viewpoint.Y}
	ecs.ForEach2(w, component.ChunkComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, chunk *component.Chunk, t *component.Transform) {
		if chunk.Level != s.state.Level {
			return
		}
		if from.Distance(cp.Vector{X: t.X, Y: t.Y}) <= procgen.DespawnRange {
			return
		}
		coord := procgen.ChunkAt(procgen.Vec2{X: t.X, Y: t.Y}, tile)
		ctrl.Remove(coord)
		ecs.DestroyEntity(w, e)
		w.Events().Push(ecs.Event{
			Type: ecs.EventChunkDespawned,
			Data: ecs.ChunkEvent{Entity: e, Level: s.state.Level, Coord: coord},
		})
	})
}

func (s *ChunkStreamerSystem) levelRoot(w *ecs.World) ecs.Entity {
	if s.root.Valid() && w.IsAlive(s.root) {
		return s.root
	}
	s.root, _ = entity.FindLevel(w, s.state.Level)
	return s.root
}

// ClearLevel forgets every chunk of the level without touching entities.
// Used on level teardown, where DespawnLevel destroys the chunks.
func (s *ChunkStreamerSystem) ClearLevel() {
	if s == nil || s.state == nil {
		return
	}
	s.state.Controllers.Clear(s.state.Level)
	s.root = 0
}
