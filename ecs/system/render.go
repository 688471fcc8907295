package system

import (
	"bytes"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/zone"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

const windStreakSpacing = 1.5

var (
	waterFill = color.RGBA{R: 40, G: 110, B: 220, A: 90}
	deathFill = color.RGBA{R: 200, G: 30, B: 30, A: 110}
	windFill  = color.RGBA{R: 200, G: 230, B: 255, A: 24}
)

// View maps world meters (Y up) to screen pixels (Y down).
type View struct {
	CamX, CamY float64
	Scale      float64
	HalfW      float64
	HalfH      float64
}

func NewView(cam *component.CameraRig, screenW, screenH int) View {
	v := View{Scale: common.PixelsPerUnit, HalfW: float64(screenW) / 2, HalfH: float64(screenH) / 2}
	if cam != nil {
		v.CamX, v.CamY = cam.X, cam.Y
		if cam.Zoom > 0 {
			v.Scale *= cam.Zoom
		}
	}
	return v
}

func (v View) ToScreen(x, y float64) (float32, float32) {
	return float32((x-v.CamX)*v.Scale + v.HalfW), float32(v.HalfH - (y-v.CamY)*v.Scale)
}

func (v View) Length(m float64) float32 {
	return float32(m * v.Scale)
}

type RenderSystem struct {
	face text.Face
}

func NewRenderSystem() *RenderSystem {
	r := &RenderSystem{}
	if src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err == nil {
		r.face = &text.GoTextFace{Source: src, Size: 16}
	}
	return r
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)

	var cam *component.CameraRig
	if e, ok := ecs.First(w, component.CameraRigComponent.Kind()); ok {
		cam, _ = ecs.Get(w, e, component.CameraRigComponent.Kind())
	}
	b := screen.Bounds()
	view := NewView(cam, b.Dx(), b.Dy())

	r.drawZones(w, screen, view)
	r.drawShapes(w, screen, view)
	r.drawParticles(w, screen, view)
	r.drawTexts(w, screen, view)
}

func (r *RenderSystem) drawZones(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach2(w, component.ZoneVolumeComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.ZoneVolume, t *component.Transform) {
		x, y := view.ToScreen(t.X-z.Width/2, t.Y+z.Height/2)
		wpx, hpx := view.Length(z.Width), view.Length(z.Height)
		switch z.Tag {
		case zone.TagWater:
			vector.FillRect(screen, x, y, wpx, hpx, waterFill, false)
		case zone.TagDeath:
			vector.FillRect(screen, x, y, wpx, hpx, deathFill, false)
		case zone.TagWind:
			vector.FillRect(screen, x, y, wpx, hpx, windFill, false)
			drawWindStreaks(screen, view, t, z)
		}
	})
}

// drawWindStreaks draws short dashes that scroll along the wind direction and
// wrap inside the volume.
func drawWindStreaks(screen *ebiten.Image, view View, t *component.Transform, z *component.ZoneVolume) {
	dir := z.Forward
	dir[2] = 0
	if dir.Len() < 1e-6 {
		return
	}
	dir = dir.Normalize()
	left, bottom := t.X-z.Width/2, t.Y-z.Height/2
	rows := int(z.Height / windStreakSpacing)
	cols := int(z.Width / windStreakSpacing)
	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			offset := math.Mod(z.Phase+float64(row)*0.7, windStreakSpacing)
			px := left + math.Mod(float64(col)*windStreakSpacing+offset*dir[0]+z.Width, z.Width)
			py := bottom + math.Mod(float64(row)*windStreakSpacing+offset*dir[1]+z.Height, z.Height)
			x0, y0 := view.ToScreen(px, py)
			x1, y1 := view.ToScreen(px+dir[0]*0.5, py+dir[1]*0.5)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, colornames.Lightsteelblue, true)
		}
	}
}

func (r *RenderSystem) drawShapes(w *ecs.World, screen *ebiten.Image, view View) {
	type item struct {
		layer int
		e     ecs.Entity
		rn    *component.Renderable
		t     *component.Transform
	}
	var items []item
	ecs.ForEach2(w, component.RenderableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rn *component.Renderable, t *component.Transform) {
		if rn.Hidden {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		items = append(items, item{layer: layer, e: e, rn: rn, t: t})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		clr := it.rn.Color
		if clr == nil {
			clr = colornames.White
		}
		switch it.rn.Shape {
		case component.ShapeCircle:
			cx, cy := view.ToScreen(it.t.X, it.t.Y)
			rad := view.Length(it.rn.Radius)
			vector.FillCircle(screen, cx, cy, rad, clr, true)
			// spoke to show roll
			ex, ey := view.ToScreen(it.t.X+math.Cos(it.t.Rotation)*it.rn.Radius, it.t.Y+math.Sin(it.t.Rotation)*it.rn.Radius)
			vector.StrokeLine(screen, cx, cy, ex, ey, 2, colornames.Dimgray, true)
		default:
			scaleY := it.t.ScaleY
			if scaleY == 0 {
				scaleY = 1
			}
			h := it.rn.Height * scaleY
			bottom := it.t.Y - it.rn.Height/2
			x, y := view.ToScreen(it.t.X-it.rn.Width/2, bottom+h)
			vector.FillRect(screen, x, y, view.Length(it.rn.Width), view.Length(h), clr, false)
		}
	}
}

func (r *RenderSystem) drawParticles(w *ecs.World, screen *ebiten.Image, view View) {
	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Particle, t *component.Transform) {
		clr := p.Color
		if clr == nil {
			clr = colornames.Tomato
		}
		cx, cy := view.ToScreen(t.X, t.Y)
		vector.FillCircle(screen, cx, cy, view.Length(p.Size), clr, true)
	})
}

func (r *RenderSystem) drawTexts(w *ecs.World, screen *ebiten.Image, view View) {
	if r.face == nil {
		return
	}
	ecs.ForEach2(w, component.TutorialTextComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, txt *component.TutorialText, t *component.Transform) {
		alpha := txt.Alpha.Value()
		if !txt.Visible || alpha <= 0 {
			return
		}
		x, y := view.ToScreen(t.X, t.Y)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(screen, txt.Text, r.face, op)
	})
}
