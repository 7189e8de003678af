package system

import (
	"math"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/procgen"
)

// CameraSystem moves the viewpoint. A camera with a target eases toward the
// named entity; otherwise it pans with its Input.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	x, y := transform.X, transform.Y
	if cam.TargetName != "" {
		if !w.IsAlive(cs.targetEntity) {
			cs.targetEntity = findEntityByName(w, cam.TargetName)
		}
		target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
		if ok {
			smooth := common.Clamp(cam.Smoothness, 0, 1)
			if smooth == 0 {
				smooth = 1
			}
			x = common.Lerp(x, target.X, smooth)
			y = common.Lerp(y, target.Y, smooth)
		}
	} else if input, ok := ecs.Get(w, cs.camEntity, component.InputComponent.Kind()); ok {
		speed := cam.PanSpeed * procgen.TickDuration.Seconds()
		if input.Fast && cam.FastFactor > 1 {
			speed *= cam.FastFactor
		}
		dx, dy := input.MoveX, input.MoveY
		if l := math.Hypot(dx, dy); l > 1 {
			dx, dy = dx/l, dy/l
		}
		x += dx * speed
		y += dy * speed
	}

	if x == transform.X && y == transform.Y {
		return
	}
	transform.X = x
	transform.Y = y
	if err := ecs.Add(w, cs.camEntity, component.TransformComponent.Kind(), transform); err != nil {
		panic("camera system: update transform: " + err.Error())
	}
}

func findEntityByName(w *ecs.World, name string) ecs.Entity {
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found
}
