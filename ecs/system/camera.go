package system

import (
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera centre toward the ball. The first update snaps.
func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraRigComponent.Kind())
	_, _, target, ok := firstBall(w)
	if !ok {
		return
	}

	if !cam.Snapped || cam.Smoothness <= 0 {
		cam.X, cam.Y = target.X, target.Y
		cam.Snapped = true
		return
	}
	k := common.Clamp01(cam.Smoothness * dt)
	cam.X = common.Lerp(cam.X, target.X, k)
	cam.Y = common.Lerp(cam.Y, target.Y, k)
}
