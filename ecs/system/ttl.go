package system

import (
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
)

// TTLSystem counts TTL components down by elapsed time and destroys entities
// whose time has run out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
