package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	gaugeBarX = 12
	gaugeBarY = 60
	gaugeBarW = 160
	gaugeBarH = 12
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// HUD shows the pressure gauge, the ability state and the pause menu.
type HUD struct {
	hud   *ebitenui.UI
	pause *ebitenui.UI

	percent *widget.Text
	state   *widget.Text
	message *widget.Text
}

// PauseActions are invoked from the pause menu buttons.
type PauseActions struct {
	Resume  func()
	Restart func()
	Quit    func()
}

func NewHUD(actions PauseActions) *HUD {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	h := &HUD{}
	h.hud = h.buildGauge(&face)
	h.pause = buildPauseMenu(&face, actions)
	return h
}

func (h *HUD) buildGauge(face *ebtext.Face) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})

	title := widget.NewText(widget.TextOpts.Text("PRESSURE", face, white))
	h.percent = widget.NewText(widget.TextOpts.Text("0%", face, white))
	h.state = widget.NewText(widget.TextOpts.Text("", face, white))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 28, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(gaugeBarW+24, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(h.percent)
	panel.AddChild(h.state)

	h.message = widget.NewText(
		widget.TextOpts.Text("", face, colornames.Tomato),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	root.AddChild(h.message)
	return &ebitenui.UI{Container: root}
}

func buildPauseMenu(face *ebtext.Face, actions PauseActions) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	button := func(label string, fn func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(button("Resume", actions.Resume))
	panel.AddChild(button("Restart", actions.Restart))
	panel.AddChild(button("Quit", actions.Quit))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// Update refreshes the labels from the world. paused routes input to the menu.
func (h *HUD) Update(w *ecs.World, paused bool) {
	if h == nil {
		return
	}
	if paused {
		h.pause.Update()
		return
	}

	if ball := ballOf(w); ball != nil {
		h.state.Label = ball.Gate.State().String()
		h.message.Label = ""
		if ball.Life.Dead() {
			h.message.Label = "Popped! Press R to restart"
		}
	}
	if g := gaugeOf(w); g != nil {
		h.percent.Label = fmt.Sprintf("%d%%", g.Percent)
	}
	h.hud.Update()
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image, paused bool) {
	if h == nil {
		return
	}
	h.hud.Draw(screen)

	if g := gaugeOf(w); g != nil {
		vector.FillRect(screen, gaugeBarX, gaugeBarY, gaugeBarW, gaugeBarH, color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}, false)
		clr := g.Color
		if clr == nil {
			clr = colornames.White
		}
		vector.FillRect(screen, gaugeBarX, gaugeBarY, float32(gaugeBarW*g.Fill), gaugeBarH, clr, false)
	}

	if paused {
		h.pause.Draw(screen)
	}
}

func ballOf(w *ecs.World) *component.Ball {
	if w == nil {
		return nil
	}
	e, ok := ecs.First(w, component.BallComponent.Kind())
	if !ok {
		return nil
	}
	ball, _ := ecs.Get(w, e, component.BallComponent.Kind())
	return ball
}

func gaugeOf(w *ecs.World) *component.Gauge {
	if w == nil {
		return nil
	}
	e, ok := ecs.First(w, component.GaugeComponent.Kind())
	if !ok {
		return nil
	}
	g, _ := ecs.Get(w, e, component.GaugeComponent.Kind())
	return g
}
