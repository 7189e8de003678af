package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/procgen"
)

// MoverSystem steers transforms toward their next waypoint. Writing the
// transform back moves its change stamp, which is what agent sync keys on.
type MoverSystem struct{}

func NewMoverSystem() *MoverSystem {
	return &MoverSystem{}
}

func (m *MoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := procgen.TickDuration.Seconds()

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.MoverComponent.Kind(), component.PathfindingComponent.Kind(), func(e ecs.Entity, t *component.Transform, mv *component.Mover, pf *component.Pathfinding) {
		if pf.Done() || mv.Speed <= 0 {
			return
		}
		pos := cp.Vector{X: t.X, Y: t.Y}
		wp := pf.Waypoints[pf.Next]
		target := cp.Vector{X: wp.X, Y: wp.Y}

		delta := target.Sub(pos)
		dist := delta.Length()
		step := mv.Speed * dt
		if dist <= math.Max(step, mv.Arrive) {
			pos = target
			pf.Next++
		} else {
			pos = pos.Add(delta.Normalize().Mult(step))
		}

		t.X, t.Y = pos.X, pos.Y
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			panic("mover system: update transform: " + err.Error())
		}
	})
}
