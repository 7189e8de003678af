package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/procgen"
	"golang.org/x/image/colornames"
)

// RenderSystem draws the streamed world: chunk outlines, the navigation grid
// bounds, NPCs and their paths. The camera transform is the screen centre.
type RenderSystem struct {
	state     *ProcGen
	camEntity ecs.Entity
	ShowPaths bool
}

func NewRenderSystem(state *ProcGen) *RenderSystem {
	return &RenderSystem{state: state, ShowPaths: true}
}

type view struct {
	camX, camY float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func (v view) project(x, y float64) (float32, float32) {
	return float32((x-v.camX)*v.zoom + v.halfW), float32((y-v.camY)*v.zoom + v.halfH)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	v := view{zoom: 1, halfW: common.BaseWidth / 2, halfH: common.BaseHeight / 2}
	if b := screen.Bounds(); b.Dx() > 0 {
		v.halfW, v.halfH = float64(b.Dx())/2, float64(b.Dy())/2
	}
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.camX, v.camY = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.zoom = cam.Zoom
	}

	screen.Fill(colornames.Darkolivegreen)

	tile := procgen.TileSize{Width: 16, Height: 16}
	if r.state != nil {
		if td, ok := r.state.Tiles.Get(r.state.Level); ok {
			tile = td.TileSize()
		}
	}
	size := tile.ChunkWorldSize()

	ecs.ForEach2(w, component.ChunkComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Chunk, t *component.Transform) {
		x, y := v.project(t.X, t.Y)
		vector.FillRect(screen, x, y, float32(size.X*v.zoom), float32(size.Y*v.zoom), color.RGBA{R: 0x55, G: 0x8b, B: 0x2f, A: 0xff}, false)
		vector.StrokeRect(screen, x, y, float32(size.X*v.zoom), float32(size.Y*v.zoom), 1, colornames.Darkgreen, false)
	})

	ecs.ForEach2(w, component.NavGridComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.NavGrid, t *component.Transform) {
		if g.Grid == nil {
			return
		}
		x, y := v.project(t.X, t.Y)
		gw := float32(float64(g.Grid.Width()) * tile.Width * v.zoom)
		gh := float32(float64(g.Grid.Height()) * tile.Height * v.zoom)
		vector.StrokeRect(screen, x, y, gw, gh, 2, colornames.Gold, false)
	})

	ecs.ForEach2(w, component.ProcGeneratedComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ProcGenerated, t *component.Transform) {
		if r.ShowPaths {
			if pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind()); ok && !pf.Done() {
				px, py := v.project(t.X, t.Y)
				for _, wp := range pf.Waypoints[pf.Next:] {
					nx, ny := v.project(wp.X, wp.Y)
					vector.StrokeLine(screen, px, py, nx, ny, 1, colornames.Lightskyblue, true)
					px, py = nx, ny
				}
			}
		}
		x, y := v.project(t.X, t.Y)
		vector.FillCircle(screen, x, y, float32(tile.Width*0.4*v.zoom), colornames.Orangered, true)
	})

	cx, cy := v.project(v.camX, v.camY)
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, colornames.White, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, colornames.White, false)
}
