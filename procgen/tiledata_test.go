package procgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMasks() TerrainMasks {
	return TerrainMasks{
		FullDirt:               NewTileSet(TilePos{0, 0}),
		FullGrass:              NewTileSet(TilePos{1, 0}),
		CornerOuterGrassToDirt: NewTileSet(),
		CornerOuterDirtToGrass: NewTileSet(),
		SideDirtAndGrass:       NewTileSet(TilePos{2, 1}),
		DiagStripeGrassInDirt:  NewTileSet(),
	}
}

func TestTileDataMasksAllOrNothing(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		d := &TileData{Level: Overworld, TileWidth: 16, TileHeight: 16, Terrain: fullMasks()}
		masks, ok := d.Masks()
		require.True(t, ok)
		assert.True(t, masks.FullGrass.Contains(TilePos{1, 0}))
	})

	t.Run("one_missing", func(t *testing.T) {
		m := fullMasks()
		m.DiagStripeGrassInDirt = nil
		d := &TileData{Level: Overworld, TileWidth: 16, TileHeight: 16, Terrain: m}
		_, ok := d.Masks()
		assert.False(t, ok)
	})

	t.Run("none", func(t *testing.T) {
		d := &TileData{Level: Overworld, TileWidth: 16, TileHeight: 16}
		_, ok := d.Masks()
		assert.False(t, ok)
	})

	t.Run("nil_data", func(t *testing.T) {
		var d *TileData
		_, ok := d.Masks()
		assert.False(t, ok)
	})
}

func TestTileDataStore(t *testing.T) {
	store := NewTileDataStore()

	_, err := store.Require(Overworld)
	require.ErrorIs(t, err, ErrTileDataMissing)

	err = store.Set(&TileData{Level: Overworld, TileWidth: 0, TileHeight: 16})
	require.ErrorIs(t, err, ErrInvalidTileSize)

	require.NoError(t, store.Set(&TileData{Level: Overworld, TileWidth: 16, TileHeight: 8}))
	d, err := store.Require(Overworld)
	require.NoError(t, err)
	assert.Equal(t, TileSize{Width: 16, Height: 8}, d.TileSize())

	store.Delete(Overworld)
	_, ok := store.Get(Overworld)
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" Overworld ")
	require.NoError(t, err)
	assert.Equal(t, Overworld, l)
	assert.Equal(t, "overworld", l.String())

	_, err = ParseLevel("moon")
	assert.Error(t, err)
}
