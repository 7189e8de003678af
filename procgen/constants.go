package procgen

import "time"

const (
	// ChunkSize is the edge length of a chunk in tiles.
	ChunkSize = 16
	// TilesPerChunk is the number of tile slots owned by one chunk.
	TilesPerChunk = ChunkSize * ChunkSize
	// RenderDistance is the half width of the square spawn window in chunks.
	RenderDistance = 2
	// ProcGenDistance is the half width of the navigation grid in chunks.
	ProcGenDistance = 2
	// GridSize is the navigation grid edge length in cells.
	GridSize = ChunkSize * (2*ProcGenDistance + 1)

	// ReferenceViewportHeight is the logical viewer height in world units.
	ReferenceViewportHeight = 720.0
	// DespawnRange is the Euclidean distance from the viewpoint past which a
	// chunk is removed. Must exceed the render window diagonal.
	DespawnRange = 4 * ReferenceViewportHeight

	// PlaceholderTextureIndex is assigned to every freshly spawned tile slot.
	PlaceholderTextureIndex = 8

	// TickDuration is the fixed simulation step.
	TickDuration = time.Second / 60
	// SyncInterval is the period of the shared proc-gen timer that gates
	// navigation grid rebuilds and agent position sync.
	SyncInterval = 250 * time.Millisecond
)

// The navigation grid must cover the whole render window.
var _ [ProcGenDistance - RenderDistance]struct{}
