package system

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/nav"
	"github.com/milk9111/overworld/procgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMasks() procgen.TerrainMasks {
	return procgen.TerrainMasks{
		FullDirt:               procgen.NewTileSet(),
		FullGrass:              procgen.NewTileSet(),
		CornerOuterGrassToDirt: procgen.NewTileSet(),
		CornerOuterDirtToGrass: procgen.NewTileSet(),
		SideDirtAndGrass:       procgen.NewTileSet(),
		DiagStripeGrassInDirt:  procgen.NewTileSet(),
	}
}

type harness struct {
	w      *ecs.World
	state  *ProcGen
	sched  *ecs.Scheduler
	camera ecs.Entity
	logs   *bytes.Buffer
	grid   *NavGridSystem
	agents *AgentPosSystem
	stats  *StatsSystem
	tile   procgen.TileSize
}

func newHarness(t *testing.T, masks bool) *harness {
	t.Helper()
	tiles := procgen.NewTileDataStore()
	td := &procgen.TileData{Level: procgen.Overworld, TileWidth: 16, TileHeight: 16}
	if masks {
		td.Terrain = fullMasks()
	}
	require.NoError(t, tiles.Set(td))

	var buf bytes.Buffer
	state := NewProcGen(procgen.Overworld, tiles)
	state.Warner = procgen.NewWarner(log.New(&buf, "", 0))

	w := ecs.NewWorld()
	_, err := entity.NewLevel(w, procgen.Overworld)
	require.NoError(t, err)

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{}))

	h := &harness{
		w:      w,
		state:  state,
		camera: cam,
		logs:   &buf,
		grid:   NewNavGridSystem(state, nil),
		agents: NewAgentPosSystem(state),
		stats:  NewStatsSystem(state),
		tile:   td.TileSize(),
	}
	h.sched = ecs.NewScheduler(
		NewTimerSystem(state),
		NewChunkStreamerSystem(state),
		h.grid,
		h.agents,
		h.stats,
	)
	return h
}

func (h *harness) moveCamera(t *testing.T, x, y float64) {
	t.Helper()
	require.NoError(t, ecs.Add(h.w, h.camera, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
}

// untilSync runs frames until the shared timer fires.
func (h *harness) untilSync(t *testing.T) {
	t.Helper()
	for i := 0; i < 100; i++ {
		h.sched.Update(h.w)
		if h.state.Timer.JustFinished() {
			return
		}
	}
	t.Fatal("timer never fired")
}

func chunkCount(w *ecs.World) int {
	return ecs.Count(w, component.ChunkComponent.Kind())
}

func liveChunkCoords(w *ecs.World) map[procgen.ChunkCoord]int {
	out := map[procgen.ChunkCoord]int{}
	ecs.ForEach(w, component.ChunkComponent.Kind(), func(_ ecs.Entity, c *component.Chunk) {
		out[c.Coord]++
	})
	return out
}

func TestStreamerWindowCoverage(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"origin", 0, 0},
		{"positive", 1000, 700},
		{"negative", -1000, -300},
		{"chunk edge", 256, -256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, true)
			h.moveCamera(t, tt.x, tt.y)
			h.sched.Update(h.w)

			center := procgen.ViewpointChunk(procgen.Vec2{X: tt.x, Y: tt.y}, h.tile)
			live := liveChunkCoords(h.w)
			for _, c := range procgen.RenderWindow(center) {
				assert.True(t, h.state.Controller().Contains(c), "%v", c)
				assert.Equal(t, 1, live[c], "%v", c)
			}
			assert.Equal(t, 16, h.state.Controller().Len())
			assert.Equal(t, 16, chunkCount(h.w))
			assert.Equal(t, 16, h.stats.Stats.ChunksSpawned)
		})
	}
}

func TestStreamerIdempotent(t *testing.T) {
	h := newHarness(t, true)
	h.moveCamera(t, 40, -90)
	h.sched.Update(h.w)
	entities := len(ecs.Entities(h.w))
	gen := h.state.Controller().Generation()

	for i := 0; i < 5; i++ {
		h.sched.Update(h.w)
	}
	assert.Len(t, ecs.Entities(h.w), entities)
	assert.Equal(t, gen, h.state.Controller().Generation())
	assert.Equal(t, 16, h.stats.Stats.ChunksSpawned)
	for c, n := range liveChunkCoords(h.w) {
		assert.Equal(t, 1, n, "%v", c)
	}
}

func TestStreamerDespawnThreshold(t *testing.T) {
	h := newHarness(t, true)
	h.sched.Update(h.w)
	require.Equal(t, 16, chunkCount(h.w))

	// chunk (1,1) origin sits at (256,256); move just inside then just outside
	// of the despawn range from it along x.
	inside := 256 + procgen.DespawnRange - 1
	h.moveCamera(t, inside, 256)
	h.sched.Update(h.w)
	assert.True(t, h.state.Controller().Contains(procgen.ChunkCoord{X: 1, Y: 1}))

	h.moveCamera(t, 256+procgen.DespawnRange+1, 256)
	h.sched.Update(h.w)
	assert.False(t, h.state.Controller().Contains(procgen.ChunkCoord{X: 1, Y: 1}))
	for _, c := range []procgen.ChunkCoord{{X: -2, Y: -2}, {X: 0, Y: 0}, {X: 1, Y: 1}} {
		assert.Zero(t, liveChunkCoords(h.w)[c], "%v", c)
	}

	// controller and live chunks agree after every pass
	live := liveChunkCoords(h.w)
	assert.Len(t, live, h.state.Controller().Len())
	for _, c := range h.state.Controller().Coords() {
		assert.Equal(t, 1, live[c], "%v", c)
	}
	assert.Positive(t, h.stats.Stats.ChunksDespawned)
}

func TestStreamerDespawnDestroysTileSlots(t *testing.T) {
	h := newHarness(t, true)
	h.sched.Update(h.w)
	require.Equal(t, 16*procgen.TilesPerChunk, ecs.Count(h.w, component.TileTextureComponent.Kind()))

	h.moveCamera(t, 100000, 100000)
	h.sched.Update(h.w)
	assert.Equal(t, 16, chunkCount(h.w))
	assert.Equal(t, 16*procgen.TilesPerChunk, ecs.Count(h.w, component.TileTextureComponent.Kind()))
	assert.Equal(t, 32, h.stats.Stats.ChunksSpawned)
	assert.Equal(t, 16, h.stats.Stats.ChunksDespawned)
}

func TestStreamerMissingMasks(t *testing.T) {
	h := newHarness(t, false)
	h.sched.Update(h.w)
	h.sched.Update(h.w)

	assert.Zero(t, chunkCount(h.w))
	assert.Zero(t, h.state.Controller().Len())
	assert.Equal(t, 1, bytes.Count(h.logs.Bytes(), []byte(procgen.LevelMissingOptionalTileData)))

	// once masks arrive streaming resumes
	td, _ := h.state.Tiles.Get(procgen.Overworld)
	fixed := *td
	fixed.Terrain = fullMasks()
	require.NoError(t, h.state.Tiles.Set(&fixed))
	h.sched.Update(h.w)
	assert.Equal(t, 16, chunkCount(h.w))
}

func TestStreamerMissingMasksStillDespawns(t *testing.T) {
	h := newHarness(t, true)
	h.sched.Update(h.w)
	require.Equal(t, 16, chunkCount(h.w))

	td, _ := h.state.Tiles.Get(procgen.Overworld)
	partial := *td
	partial.Terrain.SideDirtAndGrass = nil
	require.NoError(t, h.state.Tiles.Set(&partial))

	h.moveCamera(t, 100000, 0)
	h.sched.Update(h.w)
	assert.Zero(t, chunkCount(h.w))
	assert.Zero(t, h.state.Controller().Len())
}

func TestStreamerNoViewpoint(t *testing.T) {
	h := newHarness(t, true)
	ecs.DestroyEntity(h.w, h.camera)
	h.sched.Update(h.w)
	assert.Zero(t, chunkCount(h.w))
}

func panicError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func TestMissingTileDataPanics(t *testing.T) {
	systems := map[string]func(h *harness) ecs.System{
		"streamer": func(h *harness) ecs.System { return NewChunkStreamerSystem(h.state) },
		"nav grid": func(h *harness) ecs.System { return h.grid },
		"agents":   func(h *harness) ecs.System { return h.agents },
	}
	for name, build := range systems {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, true)
			h.untilSync(t)
			h.state.Tiles.Delete(procgen.Overworld)
			sys := build(h)

			// force the timer-gated systems to run
			h.state.Controller().Insert(procgen.ChunkCoord{X: -9, Y: -9})
			for !h.state.Timer.JustFinished() {
				h.state.Timer.Tick(procgen.TickDuration)
			}
			err := panicError(t, func() { sys.Update(h.w) })
			assert.True(t, errors.Is(err, procgen.ErrTileDataMissing), "%v", err)
		})
	}
}

func TestNavGridScenario80x80(t *testing.T) {
	h := newHarness(t, true)
	npc := ecs.CreateEntity(h.w)
	require.NoError(t, ecs.Add(h.w, npc, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 0}))
	require.NoError(t, ecs.Add(h.w, npc, component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: procgen.Overworld}))

	h.untilSync(t)

	e, grid, ok := entity.FindNavGrid(h.w, procgen.Overworld)
	require.True(t, ok)
	assert.Equal(t, procgen.ChunkCoord{X: -2, Y: -2}, grid.Anchor)
	assert.Equal(t, 80, grid.Grid.Width())
	assert.Equal(t, 80, grid.Grid.Height())
	assert.True(t, grid.Grid.Built())

	c, ok := grid.Grid.Nav(nav.Point{X: 79, Y: 79})
	require.True(t, ok)
	assert.Equal(t, nav.Passable(1), c)

	tr, _ := ecs.Get(h.w, e, component.TransformComponent.Kind())
	assert.Equal(t, -512.0, tr.X)
	assert.Equal(t, -512.0, tr.Y)

	pos, ok := ecs.Get(h.w, npc, component.AgentPosComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.AgentPos{X: 32, Y: 32, Z: 0}, *pos)

	assert.Equal(t, 1, h.stats.Stats.GridRebuilds)
	assert.Equal(t, 1, h.stats.Stats.GridRespawns)
}

func TestNavGridWaitsForTimer(t *testing.T) {
	h := newHarness(t, true)
	h.sched.Update(h.w)
	require.False(t, h.state.Timer.JustFinished())
	_, _, ok := entity.FindNavGrid(h.w, procgen.Overworld)
	assert.False(t, ok)
}

func TestNavGridAnchorDeterminism(t *testing.T) {
	h := newHarness(t, true)
	h.untilSync(t)
	first, grid, ok := entity.FindNavGrid(h.w, procgen.Overworld)
	require.True(t, ok)
	want, _ := h.state.Controller().Min()
	assert.Equal(t, want, grid.Anchor)

	t.Run("unchanged chunks skip rebuild", func(t *testing.T) {
		rebuilds := h.stats.Stats.GridRebuilds
		h.untilSync(t)
		assert.Equal(t, rebuilds, h.stats.Stats.GridRebuilds)
	})

	t.Run("same anchor rebuilds in place", func(t *testing.T) {
		// one chunk to the right: new columns load, the minimum stays
		h.moveCamera(t, 256, 0)
		h.untilSync(t)
		e, _, ok := entity.FindNavGrid(h.w, procgen.Overworld)
		require.True(t, ok)
		assert.Equal(t, first, e)
		assert.Equal(t, 2, h.stats.Stats.GridRebuilds)
		assert.Equal(t, 1, h.stats.Stats.GridRespawns)
	})

	t.Run("new anchor respawns", func(t *testing.T) {
		h.moveCamera(t, -2000, 0)
		h.untilSync(t)
		e, grid, ok := entity.FindNavGrid(h.w, procgen.Overworld)
		require.True(t, ok)
		assert.NotEqual(t, first, e)
		assert.False(t, ecs.IsAlive(h.w, first))
		want, _ := h.state.Controller().Min()
		assert.Equal(t, want, grid.Anchor)
		assert.Equal(t, 1, ecs.Count(h.w, component.NavGridComponent.Kind()))
	})
}

func TestNavGridEmptyControllerKeepsGrid(t *testing.T) {
	h := newHarness(t, true)
	h.untilSync(t)
	e, _, ok := entity.FindNavGrid(h.w, procgen.Overworld)
	require.True(t, ok)

	h.state.Controllers.Clear(procgen.Overworld)
	ecs.DestroyEntity(h.w, h.camera)
	h.untilSync(t)

	assert.True(t, ecs.IsAlive(h.w, e))
	assert.Equal(t, 1, h.stats.Stats.GridRebuilds)
}

func TestNavGridCustomPassability(t *testing.T) {
	h := newHarness(t, true)
	var calls []PassabilityContext
	h.grid.policy = func(g *nav.Grid, ctx PassabilityContext) {
		calls = append(calls, ctx)
		LoadedChunksPassable(g, ctx)
	}
	h.untilSync(t)
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Chunks, 16)

	_, grid, _ := entity.FindNavGrid(h.w, procgen.Overworld)
	in, _ := grid.Grid.Nav(nav.Point{X: 10, Y: 10})
	assert.True(t, in.IsPassable())
	out, _ := grid.Grid.Nav(nav.Point{X: 70, Y: 70})
	assert.False(t, out.IsPassable(), "fifth chunk column is not loaded")
}

func TestAgentPosRoundTrip(t *testing.T) {
	h := newHarness(t, true)
	positions := []procgen.Vec2{{X: 0, Y: 0}, {X: -500, Y: 300}, {X: 17.5, Y: -3}, {X: 5000, Y: 5000}}
	npcs := make([]ecs.Entity, len(positions))
	for i, p := range positions {
		npcs[i] = ecs.CreateEntity(h.w)
		require.NoError(t, ecs.Add(h.w, npcs[i], component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}))
		require.NoError(t, ecs.Add(h.w, npcs[i], component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: procgen.Overworld}))
	}
	other := ecs.CreateEntity(h.w)
	require.NoError(t, ecs.Add(h.w, other, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(h.w, other, component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: procgen.Level(7)}))

	h.untilSync(t)
	anchor, _ := h.state.Controller().Min()
	origin := procgen.ChunkOrigin(anchor, h.tile)

	for i, p := range positions {
		pos, ok := ecs.Get(h.w, npcs[i], component.AgentPosComponent.Kind())
		require.True(t, ok)
		assert.Zero(t, pos.Z)
		// the tile's world rectangle contains the position
		minX := origin.X + float64(pos.X)*h.tile.Width
		minY := origin.Y + float64(pos.Y)*h.tile.Height
		assert.True(t, p.X >= minX && p.X < minX+h.tile.Width, "x %v in [%v,+16)", p.X, minX)
		assert.True(t, p.Y >= minY && p.Y < minY+h.tile.Height, "y %v in [%v,+16)", p.Y, minY)
	}

	far, _ := ecs.Get(h.w, npcs[3], component.AgentPosComponent.Kind())
	assert.Greater(t, far.X, procgen.GridSize, "outside the grid is kept unclamped")

	_, ok := ecs.Get(h.w, other, component.AgentPosComponent.Kind())
	assert.False(t, ok)
}

func TestAgentPosSkipsUnchanged(t *testing.T) {
	h := newHarness(t, true)
	still := ecs.CreateEntity(h.w)
	moving := ecs.CreateEntity(h.w)
	for _, e := range []ecs.Entity{still, moving} {
		require.NoError(t, ecs.Add(h.w, e, component.TransformComponent.Kind(), &component.Transform{X: 8, Y: 8}))
		require.NoError(t, ecs.Add(h.w, e, component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: procgen.Overworld}))
	}
	h.untilSync(t)

	stillStamp, ok := ecs.ChangedTick(h.w, still, component.AgentPosComponent.Kind())
	require.True(t, ok)
	movingStamp, _ := ecs.ChangedTick(h.w, moving, component.AgentPosComponent.Kind())

	require.NoError(t, ecs.Add(h.w, moving, component.TransformComponent.Kind(), &component.Transform{X: 40, Y: 8}))
	h.untilSync(t)

	after, _ := ecs.ChangedTick(h.w, still, component.AgentPosComponent.Kind())
	assert.Equal(t, stillStamp, after, "unchanged agent is not rewritten")

	movedAfter, _ := ecs.ChangedTick(h.w, moving, component.AgentPosComponent.Kind())
	assert.Greater(t, movedAfter, movingStamp)
	pos, _ := ecs.Get(h.w, moving, component.AgentPosComponent.Kind())
	assert.Equal(t, 34, pos.X)
}

func TestAgentPosWaitsForChunks(t *testing.T) {
	h := newHarness(t, false)
	npc := ecs.CreateEntity(h.w)
	require.NoError(t, ecs.Add(h.w, npc, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(h.w, npc, component.ProcGeneratedComponent.Kind(), &component.ProcGenerated{Level: procgen.Overworld}))
	h.untilSync(t)
	_, ok := ecs.Get(h.w, npc, component.AgentPosComponent.Kind())
	assert.False(t, ok)
}
