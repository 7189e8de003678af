package procgen

import "fmt"

// TileSet is a set of tile coordinates. A nil TileSet means "not configured".
type TileSet map[TilePos]struct{}

func NewTileSet(positions ...TilePos) TileSet {
	s := make(TileSet, len(positions))
	for _, p := range positions {
		s[p] = struct{}{}
	}
	return s
}

func (s TileSet) Contains(p TilePos) bool {
	_, ok := s[p]
	return ok
}

// TerrainMasks is the full group of terrain coordinate sets used to pick tile
// visuals. It is opaque to streaming: only its presence matters here.
type TerrainMasks struct {
	FullDirt               TileSet
	FullGrass              TileSet
	CornerOuterGrassToDirt TileSet
	CornerOuterDirtToGrass TileSet
	SideDirtAndGrass       TileSet
	DiagStripeGrassInDirt  TileSet
}

func (m TerrainMasks) complete() bool {
	return m.FullDirt != nil &&
		m.FullGrass != nil &&
		m.CornerOuterGrassToDirt != nil &&
		m.CornerOuterDirtToGrass != nil &&
		m.SideDirtAndGrass != nil &&
		m.DiagStripeGrassInDirt != nil
}

// TileData is the per-level tile configuration. It is replaced wholesale on
// reload and never mutated after construction.
type TileData struct {
	Level      Level
	TileWidth  float64
	TileHeight float64
	Terrain    TerrainMasks
}

func (d *TileData) TileSize() TileSize {
	return TileSize{Width: d.TileWidth, Height: d.TileHeight}
}

// Masks returns the terrain masks only if every set is configured.
func (d *TileData) Masks() (TerrainMasks, bool) {
	if d == nil || !d.Terrain.complete() {
		return TerrainMasks{}, false
	}
	return d.Terrain, true
}

func (d *TileData) Validate() error {
	if d == nil {
		return ErrTileDataMissing
	}
	if !d.TileSize().valid() {
		return fmt.Errorf("%w: %s got %gx%g", ErrInvalidTileSize, d.Level, d.TileWidth, d.TileHeight)
	}
	return nil
}

// TileDataStore holds the loaded TileData of each level kind.
type TileDataStore struct {
	byLevel map[Level]*TileData
}

func NewTileDataStore() *TileDataStore {
	return &TileDataStore{byLevel: make(map[Level]*TileData)}
}

func (s *TileDataStore) Get(level Level) (*TileData, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.byLevel[level]
	return d, ok && d != nil
}

// Require returns the tile data of level or ErrTileDataMissing.
func (s *TileDataStore) Require(level Level) (*TileData, error) {
	d, ok := s.Get(level)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTileDataMissing, level)
	}
	return d, nil
}

func (s *TileDataStore) Set(d *TileData) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.byLevel[d.Level] = d
	return nil
}

func (s *TileDataStore) Delete(level Level) {
	delete(s.byLevel, level)
}
