package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/physics"
	"github.com/milk9111/rollball/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	platformFriction = 0.8
	cameraSmoothness = 6.0
	platformLayer    = 1
	buttonLayer      = 1
)

// LoadLevelToWorld creates the static geometry, zones, buttons, texts, the
// camera, the gauge and the level bounds of lvl.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if lvl == nil {
		return fmt.Errorf("entity: level: nil level")
	}
	pw := w.Physics()
	if pw == nil {
		return ErrNoPhysics
	}

	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	bounds := ecs.CreateEntity(w)
	add(ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Name: lvl.Name, KillY: lvl.KillY}))

	cam := ecs.CreateEntity(w)
	add(ecs.Add(w, cam, component.CameraRigComponent.Kind(), &component.CameraRig{
		Yaw:        lvl.Camera.Yaw,
		Pitch:      lvl.Camera.Pitch,
		Zoom:       lvl.Camera.Zoom,
		Smoothness: cameraSmoothness,
	}))

	gauge := ecs.CreateEntity(w)
	add(ecs.Add(w, gauge, component.GaugeComponent.Kind(), &component.Gauge{Max: component.GaugeMax, SmoothSpeed: component.GaugeSmoothSpeed}))

	for _, p := range lvl.Platforms {
		pw.AddBox(p.X, p.Y, p.W, p.H, platformFriction)
		e := ecs.CreateEntity(w)
		add(ecs.Add(w, e, component.PlatformComponent.Kind(), &component.Platform{Width: p.W, Height: p.H}))
		add(addRect(w, e, p, colornames.Slategray, platformLayer))
	}

	for _, z := range lvl.Zones {
		forward := z.ForwardVec()
		id := pw.AddZone(z.X, z.Y, z.W, z.H, z.Tag, forward)
		e := ecs.CreateEntity(w)
		add(ecs.Add(w, e, component.ZoneVolumeComponent.Kind(), &component.ZoneVolume{
			ID:      id,
			Tag:     z.Tag,
			Width:   z.W,
			Height:  z.H,
			Forward: forward,
		}))
		add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: z.X + z.W/2, Y: z.Y + z.H/2, ScaleX: 1, ScaleY: 1}))
	}

	for _, b := range lvl.Buttons {
		pw.AddBox(b.X, b.Y, b.W, b.H, platformFriction)
		e := ecs.CreateEntity(w)
		add(ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{Width: b.W, Height: b.H}))
		add(addRect(w, e, b, colornames.Crimson, buttonLayer))
	}

	for _, txt := range lvl.Texts {
		e := ecs.CreateEntity(w)
		add(ecs.Add(w, e, component.TutorialTextComponent.Kind(), &component.TutorialText{
			Text:        txt.Text,
			TriggerX:    txt.Trigger.X,
			TriggerY:    txt.Trigger.Y,
			TriggerW:    txt.Trigger.W,
			TriggerH:    txt.Trigger.H,
			TargetAlpha: txt.TargetAlpha,
		}))
		add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: txt.At.X, Y: txt.At.Y, ScaleX: 1, ScaleY: 1}))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("entity: level %s: %w", lvl.Name, err)
	}
	return nil
}

func addRect(w *ecs.World, e ecs.Entity, r levels.Rect, clr color.Color, layer int) error {
	return errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: r.X + r.W/2, Y: r.Y + r.H/2, ScaleX: 1, ScaleY: 1}),
		ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{Shape: component.ShapeRect, Width: r.W, Height: r.H, Color: clr}),
		ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}),
	)
}

// NewGameWorld builds a fresh world for one play session: physics, level and ball.
func NewGameWorld(lvl *levels.Level, ball *prefabs.BallSpec, effect *prefabs.EffectSpec, log *zap.Logger) (*ecs.World, ecs.Entity, error) {
	w := ecs.NewWorld()
	w.SetPhysics(physics.NewWorld(common.Gravity))
	if err := LoadLevelToWorld(w, lvl); err != nil {
		return nil, 0, err
	}
	e, err := NewBall(w, ball, effect, lvl.Spawn.X, lvl.Spawn.Y, log)
	if err != nil {
		return nil, 0, err
	}
	return w, e, nil
}
