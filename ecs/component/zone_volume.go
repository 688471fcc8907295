package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/zone"
)

type ZoneVolume struct {
	ID      zone.VolumeID
	Tag     zone.Tag
	Width   float64
	Height  float64
	Forward mgl64.Vec3
	// Phase scrolls the wind streaks.
	Phase float64
}

var ZoneVolumeComponent = NewComponent[ZoneVolume]()
