package system

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/procgen"
)

type PipelineOptions struct {
	// Input registers the ebiten InputSystem. Headless runs leave it off.
	Input       bool
	Passability Passability
	Scripts     ScriptLoader
}

// Pipeline wires the per-tick system order of one level kind:
// timer, input, camera, AI goals, pathfinding, movement, then chunk
// streaming, grid sync and agent sync, and finally stats.
type Pipeline struct {
	State     *ProcGen
	Scheduler *ecs.Scheduler
	Streamer  *ChunkStreamerSystem
	NavGrid   *NavGridSystem
	Agents    *AgentPosSystem
	AIGoal    *AIGoalSystem
	Stats     *StatsSystem
}

func NewPipeline(state *ProcGen, opts PipelineOptions) *Pipeline {
	p := &Pipeline{
		State:    state,
		Streamer: NewChunkStreamerSystem(state),
		NavGrid:  NewNavGridSystem(state, opts.Passability),
		Agents:   NewAgentPosSystem(state),
		AIGoal:   NewAIGoalSystem(opts.Scripts),
		Stats:    NewStatsSystem(state),
	}

	p.Scheduler = ecs.NewScheduler(NewTimerSystem(state))
	if opts.Input {
		p.Scheduler.Add(NewInputSystem())
	}
	p.Scheduler.Add(NewCameraSystem())
	p.Scheduler.Add(p.AIGoal)
	p.Scheduler.Add(NewPathfindingSystem(state))
	p.Scheduler.Add(NewMoverSystem())
	p.Scheduler.Add(p.Streamer)
	p.Scheduler.Add(p.NavGrid)
	p.Scheduler.Add(p.Agents)
	p.Scheduler.Add(p.Stats)
	return p
}

func (p *Pipeline) Update(w *ecs.World) {
	p.Scheduler.Update(w)
}

// EnterLevel loads the level's tile data and spec, then spawns its root,
// NPCs and the camera.
func (p *Pipeline) EnterLevel(w *ecs.World) error {
	level := p.State.Level
	td, err := prefabs.LoadTileData(level)
	if err != nil {
		return fmt.Errorf("enter %s: %w", level, err)
	}
	if err := p.State.Tiles.Set(td); err != nil {
		return fmt.Errorf("enter %s: %w", level, err)
	}

	spec, err := prefabs.LoadLevelSpec(level)
	if err != nil {
		return fmt.Errorf("enter %s: %w", level, err)
	}
	if _, ok := w.First(component.CameraTagComponent.Kind()); !ok {
		if _, err := entity.NewCameraAt(w, spec.Camera.X, spec.Camera.Y); err != nil {
			return fmt.Errorf("enter %s: %w", level, err)
		}
	}
	if _, err := entity.SpawnLevel(w, spec); err != nil {
		return fmt.Errorf("enter %s: %w", level, err)
	}
	log.Printf("level: entered %s with %d npcs", level, len(spec.NPCs))
	return nil
}

// ExitLevel despawns everything the level owns and clears its controller.
// The navigation grid and agent sync start over on the next entry.
func (p *Pipeline) ExitLevel(w *ecs.World) {
	if root, ok := entity.FindLevel(w, p.State.Level); ok {
		entity.DespawnLevel(w, root)
	}
	p.Streamer.ClearLevel()
	log.Printf("level: exited %s", p.State.Level)
}

// Reload applies a changed prefab file: tile data is re-read and replaced,
// scripts are recompiled on next use.
func (p *Pipeline) Reload(path string) error {
	switch {
	case isScriptFile(path):
		p.AIGoal.Invalidate(filepath.Base(path))
		log.Printf("prefabs: script %s changed", filepath.Base(path))
		return nil
	case isTileDataFile(path):
		level, _ := prefabs.LevelForTileDataFile(path)
		if level != p.State.Level {
			return nil
		}
		td, err := prefabs.LoadTileData(level)
		if err != nil {
			return fmt.Errorf("reload %s: %w", path, err)
		}
		if err := p.State.Tiles.Set(td); err != nil {
			return fmt.Errorf("reload %s: %w", path, err)
		}
		if _, ok := td.Masks(); ok && p.State.Warner != nil {
			p.State.Warner.Forget(procgen.LevelMissingOptionalTileData)
		}
		log.Printf("prefabs: reloaded tile data for %s", level)
	}
	return nil
}

func isTileDataFile(path string) bool {
	_, ok := prefabs.LevelForTileDataFile(path)
	return ok
}

func isScriptFile(path string) bool {
	return filepath.Ext(path) == ".tengo"
}
