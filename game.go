package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/procgen"
)

type Game struct {
	frames int
	debug  bool
	paused bool

	world    *ecs.World
	pipeline *system.Pipeline
	render   *system.RenderSystem
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI
}

func NewGame(level procgen.Level, debug, watch bool) (*Game, error) {
	state := system.NewProcGen(level, nil)
	g := &Game{
		debug:    debug,
		world:    ecs.NewWorld(),
		pipeline: system.NewPipeline(state, system.PipelineOptions{Input: true}),
		render:   system.NewRenderSystem(state),
	}
	g.pipeline.Stats.Verbose = debug
	g.render.ShowPaths = debug

	if err := g.pipeline.EnterLevel(g.world); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			// running from outside the repo: embedded prefabs only
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.ShowPaths = !g.render.ShowPaths
	}

	if g.watcher != nil {
		for _, path := range g.watcher.Drain() {
			if err := g.pipeline.Reload(path); err != nil {
				log.Printf("prefabs: %v", err)
			}
		}
	}

	g.frames++
	g.pipeline.Update(g.world)
	return nil
}

// ResetLevel tears the level down and streams it again from the current
// camera position.
func (g *Game) ResetLevel() {
	g.pipeline.ExitLevel(g.world)
	if err := g.pipeline.EnterLevel(g.world); err != nil {
		log.Printf("reset level: %v", err)
	}
	g.paused = false
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	s := g.pipeline.Stats.Stats
	hud := fmt.Sprintf("Frames: %d    FPS: %.2f\nChunks: %d (+%d -%d)\nGrid rebuilds: %d (respawned %d)",
		g.frames, ebiten.ActualFPS(), s.LoadedChunks, s.ChunksSpawned, s.ChunksDespawned, s.GridRebuilds, s.GridRespawns)
	if s.HasAnchor {
		hud += fmt.Sprintf("\nAnchor: %d,%d", s.Anchor.X, s.Anchor.Y)
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
