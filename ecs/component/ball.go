package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/lifecycle"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/physics"
	"github.com/milk9111/rollball/zone"
)

// Ball owns the player's decision state. Everything here lives and dies with
// the ball entity.
type Ball struct {
	Gate     *ability.Gate
	Resolver *motion.Resolver
	Zones    *zone.Tracker
	Life     *lifecycle.Controller
	Body     *physics.Body

	Intent mgl64.Vec3
	Jump   motion.JumpRequest
	Caps   ability.Capabilities

	// ProbeDistance is radius plus ground margin.
	ProbeDistance float64
	GroundMask    uint
	LastTier      motion.Tier
}

var BallComponent = NewComponent[Ball]()
