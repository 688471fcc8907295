package entity

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/lifecycle"
	"github.com/milk9111/rollball/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const effectLayer = 3

// visual hides an entity's Renderable.
type visual struct {
	w *ecs.World
	e ecs.Entity
}

func (v *visual) Hide() {
	if r, ok := ecs.Get(v.w, v.e, component.RenderableComponent.Kind()); ok {
		r.Hidden = true
	}
}

// burst spawns a ring of particles that outlive the entity that died.
type burst struct {
	w    *ecs.World
	spec *prefabs.EffectSpec
	log  *zap.Logger
}

func (b *burst) NaturalDuration() (float64, error) {
	if b.spec == nil || b.spec.Lifetime <= 0 {
		return 0, lifecycle.ErrUnknownDuration
	}
	return b.spec.Lifetime, nil
}

func (b *burst) Spawn(pos mgl64.Vec3, expiry float64) {
	if _, err := SpawnBurst(b.w, b.spec, pos[0], pos[1], expiry); err != nil && b.log != nil {
		b.log.Warn("death effect incomplete", zap.Error(err))
	}
}

// SpawnBurst creates one entity per particle, each destroyed after expiry
// seconds. A nil spec uses a small default burst. Particles that fail to
// assemble are destroyed and reported in the joined error.
func SpawnBurst(w *ecs.World, spec *prefabs.EffectSpec, x, y, expiry float64) ([]ecs.Entity, error) {
	count, speed, gravity, size := 16, 3.0, 6.0, 0.1
	var clr color.Color = colornames.Tomato
	if spec != nil {
		count, speed, gravity = spec.Particles, spec.Speed, spec.Gravity
		if spec.Size > 0 {
			size = spec.Size
		}
		clr = spec.Color.ColorOr(clr)
	}
	count = max(count, 0)

	out := make([]ecs.Entity, 0, count)
	var errs []error
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		// alternate fast and slow fragments so the ring breaks up
		v := speed
		if i%2 == 1 {
			v *= 0.6
		}
		e := ecs.CreateEntity(w)
		err := errors.Join(
			ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
			ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{
				VX:      math.Cos(angle) * v,
				VY:      math.Sin(angle) * v,
				Gravity: gravity,
				Size:    size,
				Color:   clr,
			}),
			ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: expiry}),
			ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: effectLayer}),
		)
		if err != nil {
			ecs.DestroyEntity(w, e)
			errs = append(errs, fmt.Errorf("entity: particle %d: %w", i, err))
			continue
		}
		out = append(out, e)
	}
	return out, errors.Join(errs...)
}
