package prefabs

import (
	"fmt"

	"github.com/milk9111/overworld/procgen"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CameraSpec struct {
	Name       string        `yaml:"name"`
	Transform  TransformSpec `yaml:"transform"`
	Target     string        `yaml:"target"`
	PanSpeed   float64       `yaml:"pan_speed"`
	FastFactor float64       `yaml:"fast_factor"`
	Zoom       float64       `yaml:"zoom"`
	Smoothness float64       `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type NPCSpec struct {
	Name         string  `yaml:"name"`
	MoveSpeed    float64 `yaml:"move_speed"`
	ArriveRadius float64 `yaml:"arrive_radius"`
	Script       string  `yaml:"script"`
	RepathFrames int     `yaml:"repath_frames"`
}

func LoadNPCSpec() (*NPCSpec, error) {
	spec, err := LoadSpec[NPCSpec]("npc.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LevelSpec describes how a level kind is populated when it is entered.
type LevelSpec struct {
	Name   string          `yaml:"name"`
	Camera TransformSpec   `yaml:"camera"`
	NPCs   []TransformSpec `yaml:"npcs"`
}

func (s *LevelSpec) Level() (procgen.Level, error) {
	return procgen.ParseLevel(s.Name)
}

// LoadLevelSpec reads <level>.yaml.
func LoadLevelSpec(level procgen.Level) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](level.String() + ".yaml")
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = level.String()
	}
	return &spec, nil
}
