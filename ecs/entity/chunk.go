package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/procgen"
)

// NewChunk spawns a chunk container at the chunk's world origin with one
// child entity per tile slot, each carrying texture.
func NewChunk(w *ecs.World, level procgen.Level, root ecs.Entity, coord procgen.ChunkCoord, tile procgen.TileSize, texture int) (ecs.Entity, error) {
	origin := procgen.ChunkOrigin(coord, tile)

	chunk := ecs.CreateEntity(w)
	if err := ecs.Add(w, chunk, component.ChunkComponent.Kind(), &component.Chunk{Level: level, Coord: coord}); err != nil {
		return 0, fmt.Errorf("chunk: add chunk: %w", err)
	}
	if err := ecs.Add(w, chunk, component.TransformComponent.Kind(), &component.Transform{X: origin.X, Y: origin.Y}); err != nil {
		return 0, fmt.Errorf("chunk: add transform: %w", err)
	}
	if ecs.IsAlive(w, root) {
		if err := w.SetParent(chunk, root); err != nil {
			return 0, fmt.Errorf("chunk: set parent: %w", err)
		}
	}

	storage := &component.TileStorage{}
	for y := 0; y < procgen.ChunkSize; y++ {
		for x := 0; x < procgen.ChunkSize; x++ {
			slot := ecs.CreateEntity(w)
			if err := ecs.Add(w, slot, component.TilePositionComponent.Kind(), &component.TilePosition{X: x, Y: y}); err != nil {
				return 0, fmt.Errorf("chunk: add tile position: %w", err)
			}
			if err := ecs.Add(w, slot, component.TileTextureComponent.Kind(), &component.TileTexture{Index: texture}); err != nil {
				return 0, fmt.Errorf("chunk: add tile texture: %w", err)
			}
			if err := w.SetParent(slot, chunk); err != nil {
				return 0, fmt.Errorf("chunk: parent tile: %w", err)
			}
			storage.Set(procgen.TilePos{X: x, Y: y}, uint64(slot))
		}
	}
	if err := ecs.Add(w, chunk, component.TileStorageComponent.Kind(), storage); err != nil {
		return 0, fmt.Errorf("chunk: add tile storage: %w", err)
	}

	return chunk, nil
}
