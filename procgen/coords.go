package procgen

import "math"

// ChunkCoord identifies a chunk on the infinite chunk grid.
type ChunkCoord struct {
	X int
	Y int
}

// Less orders chunk coordinates by x, then y.
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// TilePos is an integer tile position. Grid-local positions may be negative.
type TilePos struct {
	X int
	Y int
}

// Vec2 is a world-space position.
type Vec2 struct {
	X float64
	Y float64
}

// TileSize is the world size of one tile.
type TileSize struct {
	Width  float64
	Height float64
}

func (t TileSize) valid() bool {
	return t.Width > 0 && t.Height > 0
}

// ChunkWorldSize returns the world size of a whole chunk.
func (t TileSize) ChunkWorldSize() Vec2 {
	return Vec2{X: ChunkSize * t.Width, Y: ChunkSize * t.Height}
}

// ViewpointChunk returns the chunk containing pos. The position is converted
// to whole tiles and then floor-divided by ChunkSize on each axis.
func ViewpointChunk(pos Vec2, tile TileSize) ChunkCoord {
	tx := int(math.Floor(pos.X / tile.Width))
	ty := int(math.Floor(pos.Y / tile.Height))
	return ChunkCoord{X: floorDiv(tx, ChunkSize), Y: floorDiv(ty, ChunkSize)}
}

// ChunkOrigin returns the world position of a chunk's origin.
func ChunkOrigin(c ChunkCoord, tile TileSize) Vec2 {
	size := tile.ChunkWorldSize()
	return Vec2{X: float64(c.X) * size.X, Y: float64(c.Y) * size.Y}
}

// ChunkAt recovers a chunk coordinate from a chunk's world origin.
func ChunkAt(origin Vec2, tile TileSize) ChunkCoord {
	size := tile.ChunkWorldSize()
	return ChunkCoord{
		X: int(math.Floor(origin.X/size.X + 1e-9)),
		Y: int(math.Floor(origin.Y/size.Y + 1e-9)),
	}
}

// RenderWindow returns the chunk coordinates kept spawned around center:
// [cx-RenderDistance, cx+RenderDistance) x [cy-RenderDistance, cy+RenderDistance),
// rows first.
func RenderWindow(center ChunkCoord) []ChunkCoord {
	out := make([]ChunkCoord, 0, 4*RenderDistance*RenderDistance)
	for y := center.Y - RenderDistance; y < center.Y+RenderDistance; y++ {
		for x := center.X - RenderDistance; x < center.X+RenderDistance; x++ {
			out = append(out, ChunkCoord{X: x, Y: y})
		}
	}
	return out
}

// GridLocalTile projects a world position into tile coordinates relative to
// the anchor chunk. Results are not clamped to the grid.
func GridLocalTile(pos Vec2, anchor ChunkCoord, tile TileSize) TilePos {
	return TilePos{
		X: int(math.Floor(pos.X/tile.Width - float64(anchor.X*ChunkSize))),
		Y: int(math.Floor(pos.Y/tile.Height - float64(anchor.Y*ChunkSize))),
	}
}

// TileCenter returns the world position of the centre of a grid-local tile.
func TileCenter(p TilePos, anchor ChunkCoord, tile TileSize) Vec2 {
	origin := ChunkOrigin(anchor, tile)
	return Vec2{
		X: origin.X + (float64(p.X)+0.5)*tile.Width,
		Y: origin.Y + (float64(p.Y)+0.5)*tile.Height,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
