package prefabs

import (
	"testing"

	"github.com/milk9111/overworld/procgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTileDataEmbedded(t *testing.T) {
	td, err := LoadTileData(procgen.Overworld)
	require.NoError(t, err)
	assert.Equal(t, procgen.Overworld, td.Level)
	assert.Equal(t, procgen.TileSize{Width: 16, Height: 16}, td.TileSize())

	masks, ok := td.Masks()
	require.True(t, ok)
	assert.True(t, masks.FullDirt.Contains(procgen.TilePos{X: 0, Y: 0}))
	assert.True(t, masks.DiagStripeGrassInDirt.Contains(procgen.TilePos{X: 15, Y: 15}))
}

func TestParseTileData(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantErr   bool
		wantMasks bool
	}{
		{
			name:      "sizes only",
			yaml:      "level: overworld\ntile_width: 16\ntile_height: 8\n",
			wantMasks: false,
		},
		{
			name: "all groups, some empty",
			yaml: `level: overworld
tile_width: 16
tile_height: 16
terrain:
  full_dirt: [[0, 0]]
  full_grass: []
  corner_outer_grass_to_dirt: []
  corner_outer_dirt_to_grass: []
  side_dirt_and_grass: []
  diag_stripe_grass_in_dirt: [[1, 1]]
`,
			wantMasks: true,
		},
		{
			name: "one group missing",
			yaml: `level: overworld
tile_width: 16
tile_height: 16
terrain:
  full_dirt: [[0, 0]]
  full_grass: []
  corner_outer_grass_to_dirt: []
  corner_outer_dirt_to_grass: []
  side_dirt_and_grass: []
`,
			wantMasks: false,
		},
		{name: "zero width", yaml: "level: overworld\ntile_width: 0\ntile_height: 16\n", wantErr: true},
		{name: "negative height", yaml: "level: overworld\ntile_width: 16\ntile_height: -1\n", wantErr: true},
		{name: "missing level", yaml: "tile_width: 16\ntile_height: 16\n", wantErr: true},
		{name: "unknown level", yaml: "level: caves\ntile_width: 16\ntile_height: 16\n", wantErr: true},
		{name: "unknown field", yaml: "level: overworld\ntile_width: 16\ntile_height: 16\nspeed: 3\n", wantErr: true},
		{
			name:    "bad pair",
			yaml:    "level: overworld\ntile_width: 16\ntile_height: 16\nterrain:\n  full_dirt: [[0, 0, 0]]\n",
			wantErr: true,
		},
		{name: "empty document", yaml: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td, err := ParseTileData([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, ok := td.Masks()
			assert.Equal(t, tt.wantMasks, ok)
		})
	}
}

func TestParseTileDataFractionalTileSize(t *testing.T) {
	// any positive size is accepted
	td, err := ParseTileData([]byte("level: overworld\ntile_width: 0.5\ntile_height: 16\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, td.TileWidth)
}

func TestLevelForTileDataFile(t *testing.T) {
	tests := []struct {
		path  string
		level procgen.Level
		ok    bool
	}{
		{"prefabs/overworld_tiles.yaml", procgen.Overworld, true},
		{"/abs/dir/overworld_tiles.yaml", procgen.Overworld, true},
		{"prefabs/overworld.yaml", 0, false},
		{"prefabs/caves_tiles.yaml", 0, false},
	}
	for _, tt := range tests {
		level, ok := LevelForTileDataFile(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.level, level, tt.path)
	}
	assert.Equal(t, "overworld_tiles.yaml", TileDataFile(procgen.Overworld))
}
