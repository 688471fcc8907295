package system

import (
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
)

// ParticleSystem integrates burst fragments and fades them with their TTL.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (s *ParticleSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Particle, t *component.Transform) {
		p.VY -= p.Gravity * dt
		t.X += p.VX * dt
		t.Y += p.VY * dt
	})
}
