package procgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tile16 = TileSize{Width: 16, Height: 16}

func TestViewpointChunk(t *testing.T) {
	cases := []struct {
		name string
		pos  Vec2
		want ChunkCoord
	}{
		{"origin", Vec2{0, 0}, ChunkCoord{0, 0}},
		{"inside_first_chunk", Vec2{255.9, 10}, ChunkCoord{0, 0}},
		{"next_chunk", Vec2{256, 0}, ChunkCoord{1, 0}},
		{"just_negative", Vec2{-0.1, 0}, ChunkCoord{-1, 0}},
		{"negative_edge", Vec2{-256, -256}, ChunkCoord{-1, -1}},
		{"past_negative_edge", Vec2{-256.1, 512}, ChunkCoord{-2, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ViewpointChunk(c.pos, tile16))
		})
	}
}

func TestChunkOriginRoundTrip(t *testing.T) {
	sizes := []TileSize{tile16, {Width: 10, Height: 12}, {Width: 7.5, Height: 3}}
	for _, size := range sizes {
		for x := -3; x <= 3; x++ {
			for y := -3; y <= 3; y++ {
				c := ChunkCoord{X: x, Y: y}
				require.Equal(t, c, ChunkAt(ChunkOrigin(c, size), size), "size=%v coord=%v", size, c)
			}
		}
	}

	assert.Equal(t, Vec2{X: -512, Y: -512}, ChunkOrigin(ChunkCoord{-2, -2}, tile16))
}

func TestRenderWindow(t *testing.T) {
	window := RenderWindow(ChunkCoord{0, 0})
	require.Len(t, window, 16)

	set := make(map[ChunkCoord]bool, len(window))
	for _, c := range window {
		set[c] = true
	}
	for x := -2; x < 2; x++ {
		for y := -2; y < 2; y++ {
			assert.True(t, set[ChunkCoord{x, y}], "missing %d,%d", x, y)
		}
	}
	assert.False(t, set[ChunkCoord{2, 0}])
	assert.False(t, set[ChunkCoord{0, 2}])
	assert.False(t, set[ChunkCoord{-3, 0}])

	shifted := RenderWindow(ChunkCoord{5, -7})
	assert.Equal(t, ChunkCoord{3, -9}, shifted[0])
	assert.Equal(t, ChunkCoord{6, -6}, shifted[len(shifted)-1])
}

func TestGridLocalTile(t *testing.T) {
	cases := []struct {
		name   string
		pos    Vec2
		anchor ChunkCoord
		want   TilePos
	}{
		{"anchor_origin", Vec2{0, 0}, ChunkCoord{0, 0}, TilePos{0, 0}},
		{"one_tile_right", Vec2{16, 0}, ChunkCoord{0, 0}, TilePos{1, 0}},
		{"inside_tile", Vec2{31.9, 15.9}, ChunkCoord{0, 0}, TilePos{1, 0}},
		{"negative_anchor", Vec2{0, 0}, ChunkCoord{-2, -2}, TilePos{32, 32}},
		{"left_of_anchor", Vec2{-600, 0}, ChunkCoord{-2, -2}, TilePos{-6, 32}},
		{"anchor_is_chunk", ChunkOrigin(ChunkCoord{3, 4}, tile16), ChunkCoord{3, 4}, TilePos{0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, GridLocalTile(c.pos, c.anchor, tile16))
		})
	}
}

func TestTileCenter(t *testing.T) {
	center := TileCenter(TilePos{1, 2}, ChunkCoord{-1, 0}, tile16)
	assert.Equal(t, Vec2{X: -256 + 24, Y: 40}, center)
	assert.Equal(t, TilePos{1, 2}, GridLocalTile(center, ChunkCoord{-1, 0}, tile16))
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, floorDiv(15, 16))
	assert.Equal(t, 1, floorDiv(16, 16))
	assert.Equal(t, -1, floorDiv(-1, 16))
	assert.Equal(t, -1, floorDiv(-16, 16))
	assert.Equal(t, -2, floorDiv(-17, 16))
}
