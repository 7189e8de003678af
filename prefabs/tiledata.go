package prefabs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/milk9111/overworld/procgen"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tile_data.schema.json
var tileDataSchemaText string

var tileDataSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("tile_data.schema.json", tileDataSchemaText)
})

// TileDataSpec is the on-disk form of a level's tile configuration. Terrain
// coordinates are [x, y] pairs.
type TileDataSpec struct {
	Level      string       `yaml:"level"`
	TileWidth  float64      `yaml:"tile_width"`
	TileHeight float64      `yaml:"tile_height"`
	Terrain    *TerrainSpec `yaml:"terrain"`
}

type TerrainSpec struct {
	FullDirt               [][2]int `yaml:"full_dirt"`
	FullGrass              [][2]int `yaml:"full_grass"`
	CornerOuterGrassToDirt [][2]int `yaml:"corner_outer_grass_to_dirt"`
	CornerOuterDirtToGrass [][2]int `yaml:"corner_outer_dirt_to_grass"`
	SideDirtAndGrass       [][2]int `yaml:"side_dirt_and_grass"`
	DiagStripeGrassInDirt  [][2]int `yaml:"diag_stripe_grass_in_dirt"`
}

// TileDataFile returns the prefab name holding the tile data of level.
func TileDataFile(level procgen.Level) string {
	return level.String() + "_tiles.yaml"
}

// LevelForTileDataFile maps a changed file path back to its level kind.
func LevelForTileDataFile(path string) (procgen.Level, bool) {
	base := filepath.Base(filepath.ToSlash(path))
	name, ok := strings.CutSuffix(base, "_tiles.yaml")
	if !ok {
		return 0, false
	}
	level, err := procgen.ParseLevel(name)
	if err != nil {
		return 0, false
	}
	return level, true
}

// LoadTileData reads, validates and converts the tile data of level.
func LoadTileData(level procgen.Level) (*procgen.TileData, error) {
	name := TileDataFile(level)
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	td, err := ParseTileData(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	if td.Level != level {
		return nil, fmt.Errorf("prefabs: %s: level %s does not match %s", name, td.Level, level)
	}
	return td, nil
}

// ParseTileData validates raw YAML against the tile data schema and
// converts it.
func ParseTileData(data []byte) (*procgen.TileData, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := validateTileData(doc); err != nil {
		return nil, err
	}

	var spec TileDataSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	level, err := procgen.ParseLevel(spec.Level)
	if err != nil {
		return nil, err
	}

	td := &procgen.TileData{
		Level:      level,
		TileWidth:  spec.TileWidth,
		TileHeight: spec.TileHeight,
	}
	if t := spec.Terrain; t != nil {
		td.Terrain = procgen.TerrainMasks{
			FullDirt:               tileSet(t.FullDirt),
			FullGrass:              tileSet(t.FullGrass),
			CornerOuterGrassToDirt: tileSet(t.CornerOuterGrassToDirt),
			CornerOuterDirtToGrass: tileSet(t.CornerOuterDirtToGrass),
			SideDirtAndGrass:       tileSet(t.SideDirtAndGrass),
			DiagStripeGrassInDirt:  tileSet(t.DiagStripeGrassInDirt),
		}
	}
	if err := td.Validate(); err != nil {
		return nil, err
	}
	return td, nil
}

func validateTileData(doc any) error {
	schema, err := tileDataSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	// the validator expects JSON-decoded values
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// tileSet keeps nil for an absent group so the all-or-nothing mask check
// can tell "missing" from "empty".
func tileSet(pairs [][2]int) procgen.TileSet {
	if pairs == nil {
		return nil
	}
	s := procgen.NewTileSet()
	for _, p := range pairs {
		s[procgen.TilePos{X: p[0], Y: p[1]}] = struct{}{}
	}
	return s
}
