package component

import "github.com/milk9111/overworld/procgen"

type Chunk struct {
	Level procgen.Level
	Coord procgen.ChunkCoord
}

var ChunkComponent = NewComponent[Chunk]()

// TileStorage maps the 16x16 tile slots of a chunk to their entities
// (ecs.Entity is uint64). Slot (x, y) lives at index y*ChunkSize+x.
type TileStorage struct {
	Tiles [procgen.TilesPerChunk]uint64
}

func (s *TileStorage) At(p procgen.TilePos) (uint64, bool) {
	if s == nil || p.X < 0 || p.Y < 0 || p.X >= procgen.ChunkSize || p.Y >= procgen.ChunkSize {
		return 0, false
	}
	e := s.Tiles[p.Y*procgen.ChunkSize+p.X]
	return e, e != 0
}

func (s *TileStorage) Set(p procgen.TilePos, e uint64) bool {
	if s == nil || p.X < 0 || p.Y < 0 || p.X >= procgen.ChunkSize || p.Y >= procgen.ChunkSize {
		return false
	}
	s.Tiles[p.Y*procgen.ChunkSize+p.X] = e
	return true
}

var TileStorageComponent = NewComponent[TileStorage]()

type TileTexture struct {
	Index int
}

var TileTextureComponent = NewComponent[TileTexture]()

// TilePosition is the slot of a tile inside its chunk.
type TilePosition struct {
	X int
	Y int
}

var TilePositionComponent = NewComponent[TilePosition]()
