package system

import (
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/zone"
)

// windStreakSpeed is how fast streaks scroll along the wind, in meters per second.
const windStreakSpeed = 3.0

// ZoneVisualSystem scrolls wind streaks.
type ZoneVisualSystem struct{}

func NewZoneVisualSystem() *ZoneVisualSystem {
	return &ZoneVisualSystem{}
}

func (s *ZoneVisualSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ZoneVolumeComponent.Kind(), func(_ ecs.Entity, z *component.ZoneVolume) {
		if z.Tag != zone.TagWind {
			return
		}
		z.Phase += windStreakSpeed * dt
	})
}
