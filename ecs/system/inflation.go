package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/prefabs"
	"go.uber.org/zap"
)

// InflationSystem runs the pump script for every entity with Input and
// Inflation, then clamps the result to [0, Max].
type InflationSystem struct {
	log    *zap.Logger
	load   func(name string) ([]byte, error)
	cache  map[string]*tengo.Compiled
	failed map[string]bool
}

func NewInflationSystem(log *zap.Logger) *InflationSystem {
	return &InflationSystem{
		log:    common.OrNop(log),
		load:   prefabs.LoadScript,
		cache:  make(map[string]*tengo.Compiled),
		failed: make(map[string]bool),
	}
}

// Invalidate drops a compiled script so the next update reloads it.
func (s *InflationSystem) Invalidate(name string) {
	if s == nil {
		return
	}
	delete(s.cache, name)
	delete(s.failed, name)
}

func (s *InflationSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.InputComponent.Kind(), component.InflationComponent.Kind(), func(e ecs.Entity, in *component.Input, inf *component.Inflation) {
		if ball, ok := ecs.Get(w, e, component.BallComponent.Kind()); ok && ball.Life.Dead() {
			return
		}
		next, err := s.step(inf, in, dt)
		if err != nil {
			s.log.Warn("inflation script failed", zap.String("script", inf.Script), zap.Error(err))
			return
		}
		inf.Value = common.Clamp(next, 0, inf.Max)
	})
}

func (s *InflationSystem) step(inf *component.Inflation, in *component.Input, dt float64) (float64, error) {
	compiled, err := s.compiled(inf.Script)
	if err != nil || compiled == nil {
		return inf.Value, err
	}
	vars := map[string]any{
		"inflation":     inf.Value,
		"max_inflation": inf.Max,
		"dt":            dt,
		"pump":          in.Pump,
		"release":       in.Release,
		"pump_rate":     inf.PumpRate,
		"release_rate":  inf.ReleaseRate,
		"leak_rate":     inf.LeakRate,
	}
	for name, v := range vars {
		if err := compiled.Set(name, v); err != nil {
			return inf.Value, fmt.Errorf("system: set %s: %w", name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return inf.Value, fmt.Errorf("system: run %s: %w", inf.Script, err)
	}
	return compiled.Get("inflation").Float(), nil
}

func (s *InflationSystem) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := s.cache[name]; ok {
		return c, nil
	}
	if s.failed[name] {
		return nil, nil
	}
	c, err := compileInflationScript(s.load, name)
	if err != nil {
		s.failed[name] = true
		return nil, err
	}
	s.cache[name] = c
	return c, nil
}

func compileInflationScript(load func(string) ([]byte, error), name string) (*tengo.Compiled, error) {
	src, err := load(name)
	if err != nil {
		return nil, fmt.Errorf("system: load script %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	for _, v := range []string{"inflation", "max_inflation", "dt", "pump_rate", "release_rate", "leak_rate"} {
		_ = script.Add(v, 0.0)
	}
	_ = script.Add("pump", false)
	_ = script.Add("release", false)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile script %s: %w", name, err)
	}
	return compiled, nil
}
