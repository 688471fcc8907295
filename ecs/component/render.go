package component

import "image/color"

type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Renderable draws a flat shape centred on the entity's Transform. Rectangles
// scale up from their bottom edge.
type Renderable struct {
	Shape  Shape
	Width  float64
	Height float64
	Radius float64
	Color  color.Color
	Hidden bool
}

var RenderableComponent = NewComponent[Renderable]()


// RenderLayer orders drawing. Lower indices draw first; ties keep entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
