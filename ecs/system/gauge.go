package system

import (
	"image/color"
	"math"

	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"golang.org/x/image/colornames"
)

const gaugeEpsilon = 0.01

// GaugeSystem eases the HUD gauge toward the ball's inflation.
type GaugeSystem struct{}

func NewGaugeSystem() *GaugeSystem {
	return &GaugeSystem{}
}

func (s *GaugeSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	e, ball, _, ok := firstBall(w)
	if !ok {
		return
	}
	inf, ok := ecs.Get(w, e, component.InflationComponent.Kind())
	if !ok {
		return
	}
	thresholds := ball.Gate.Thresholds()

	ecs.ForEach(w, component.GaugeComponent.Kind(), func(_ ecs.Entity, g *component.Gauge) {
		if g.Max <= 0 {
			g.Max = component.GaugeMax
		}
		g.Target = inf.Value
		switch {
		case !g.Initialized:
			g.Current = g.Target
			g.Initialized = true
		case math.Abs(g.Current-g.Target) > gaugeEpsilon:
			g.Current = common.Lerp(g.Current, g.Target, common.Clamp01(g.SmoothSpeed*dt))
		}
		g.Fill = common.Clamp01(g.Current / g.Max)
		g.Percent = int(math.Ceil(g.Current * 100))
		g.Color = GaugeColor(g.Current, thresholds)
	})
}

// GaugeColor bands a pressure value using strict less-than comparisons.
func GaugeColor(v float64, t ability.Thresholds) color.Color {
	switch {
	case v < t.NoJump:
		return colornames.White
	case v < t.HalfPower:
		return colornames.Green
	case v < t.Normal:
		return colornames.Yellow
	case v < t.Boost:
		return colornames.Orange
	default:
		return colornames.Red
	}
}
