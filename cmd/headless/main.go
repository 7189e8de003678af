// Command headless runs the overworld simulation without a window, panning
// the camera at a fixed speed and logging what the proc-gen systems did.
package main

import (
	"flag"
	"log"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/procgen"
)

func main() {
	levelName := flag.String("level", "overworld", "level kind to stream")
	ticks := flag.Int("ticks", 600, "number of fixed steps to simulate")
	verbose := flag.Bool("verbose", false, "log every proc-gen event")
	moveX := flag.Float64("move-x", 1, "camera pan direction x, -1..1")
	moveY := flag.Float64("move-y", 0, "camera pan direction y, -1..1")
	fast := flag.Bool("fast", false, "pan at the camera's fast factor")
	every := flag.Int("report", 60, "log stats every n ticks, 0 to only log at the end")
	flag.Parse()

	level, err := procgen.ParseLevel(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	p := system.NewPipeline(system.NewProcGen(level, nil), system.PipelineOptions{})
	p.Stats.Verbose = *verbose
	if err := p.EnterLevel(w); err != nil {
		log.Fatal(err)
	}

	cam, ok := w.First(component.CameraTagComponent.Kind())
	if !ok {
		log.Fatal("headless: no camera spawned")
	}
	// no InputSystem runs headless, so the input stays as set
	input := &component.Input{MoveX: *moveX, MoveY: *moveY, Fast: *fast}
	if err := ecs.Add(w, cam, component.InputComponent.Kind(), input); err != nil {
		log.Fatal(err)
	}

	for i := 1; i <= *ticks; i++ {
		p.Update(w)
		if *every > 0 && i%*every == 0 {
			report(w, cam, p.Stats.Stats, i)
		}
	}
	report(w, cam, p.Stats.Stats, *ticks)

	p.ExitLevel(w)
}

func report(w *ecs.World, cam ecs.Entity, s system.Stats, tick int) {
	var x, y float64
	if tr, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		x, y = tr.X, tr.Y
	}
	agents := ecs.Count(w, component.AgentPosComponent.Kind())
	log.Printf("tick %d: camera=(%.0f,%.0f) chunks=%d spawned=%d despawned=%d rebuilds=%d respawns=%d anchor=%v agents=%d",
		tick, x, y, s.LoadedChunks, s.ChunksSpawned, s.ChunksDespawned, s.GridRebuilds, s.GridRespawns, s.Anchor, agents)
}
