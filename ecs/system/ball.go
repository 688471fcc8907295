package system

import (
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
)

// firstBall returns the live ball and its transform, if any.
func firstBall(w *ecs.World) (ecs.Entity, *component.Ball, *component.Transform, bool) {
	e, ok := ecs.First(w, component.BallComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	ball, _ := ecs.Get(w, e, component.BallComponent.Kind())
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || ball == nil {
		return 0, nil, nil, false
	}
	return e, ball, t, true
}

type aabb struct {
	x, y, w, h float64
}

func overlapsAABB(a, b aabb) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

func centeredAABB(cx, cy, w, h float64) aabb {
	return aabb{x: cx - w/2, y: cy - h/2, w: w, h: h}
}
