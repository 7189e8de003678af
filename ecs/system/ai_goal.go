package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/procgen"
)

// ScriptLoader returns the source of a goal script.
type ScriptLoader func(name string) ([]byte, error)

type goalScript struct {
	compiled *tengo.Compiled
	err      error
}

// AIGoalSystem picks goal tiles for NPCs by running their tengo script.
// Scripts see agent_x, agent_y, grid_w, grid_h, frame and seed and must
// define goal_x and goal_y.
type AIGoalSystem struct {
	load    ScriptLoader
	scripts map[string]*goalScript
}

func NewAIGoalSystem(load ScriptLoader) *AIGoalSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &AIGoalSystem{load: load, scripts: map[string]*goalScript{}}
}

// Invalidate drops a compiled script so the next run reloads it.
func (s *AIGoalSystem) Invalidate(name string) {
	if s == nil {
		return
	}
	delete(s.scripts, name)
}

// InvalidateAll drops every compiled script.
func (s *AIGoalSystem) InvalidateAll() {
	if s == nil {
		return
	}
	s.scripts = map[string]*goalScript{}
}

func (s *AIGoalSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach3(w, component.AIGoalComponent.Kind(), component.AgentPosComponent.Kind(), component.PathfindingComponent.Kind(), func(e ecs.Entity, goal *component.AIGoal, pos *component.AgentPos, pf *component.Pathfinding) {
		goal.FrameCounter--
		arrived := pf.HasGoal && len(pf.Waypoints) > 0 && pf.Done()
		if goal.FrameCounter > 0 && pf.HasGoal && !arrived {
			return
		}
		goal.FrameCounter = goal.RepathFrames

		gx, gy, err := s.run(goal, pos, w.Frame())
		if err != nil {
			log.Printf("ai goal: entity=%v script %s: %v", e, goal.Script, err)
			return
		}
		pf.Goal = nav.Point{X: gx, Y: gy}
		pf.HasGoal = true
		pf.Failed = false
	})
}

func (s *AIGoalSystem) run(goal *component.AIGoal, pos *component.AgentPos, frame uint64) (int, int, error) {
	script, err := s.compile(goal.Script)
	if err != nil {
		return 0, 0, err
	}
	c := script.Clone()
	vars := map[string]any{
		"agent_x": pos.X,
		"agent_y": pos.Y,
		"grid_w":  procgen.GridSize,
		"grid_h":  procgen.GridSize,
		"frame":   int64(frame),
		"seed":    goal.Seed,
	}
	for name, v := range vars {
		if err := c.Set(name, v); err != nil {
			return 0, 0, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := c.Run(); err != nil {
		return 0, 0, err
	}
	if !c.IsDefined("goal_x") || !c.IsDefined("goal_y") {
		return 0, 0, fmt.Errorf("script does not define goal_x and goal_y")
	}
	return c.Get("goal_x").Int(), c.Get("goal_y").Int(), nil
}

func (s *AIGoalSystem) compile(name string) (*tengo.Compiled, error) {
	if cached, ok := s.scripts[name]; ok {
		return cached.compiled, cached.err
	}
	entry := &goalScript{}
	s.scripts[name] = entry

	src, err := s.load(name)
	if err != nil {
		entry.err = fmt.Errorf("load: %w", err)
		return nil, entry.err
	}
	script := tengo.NewScript(src)
	for _, v := range []string{"agent_x", "agent_y", "grid_w", "grid_h", "frame", "seed"} {
		_ = script.Add(v, 0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	entry.compiled, entry.err = script.Compile()
	return entry.compiled, entry.err
}
