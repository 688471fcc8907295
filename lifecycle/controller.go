package lifecycle

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

type State int

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

const (
	// FallbackEffectDuration is used when an effect cannot report its own length.
	FallbackEffectDuration = 5.0
	effectExpiryPadding    = 0.1
)

var ErrUnknownDuration = errors.New("lifecycle: effect duration unknown")

// Body is frozen on death and reports the last position.
type Body interface {
	Freeze()
	Position() mgl64.Vec3
}

type Collider interface {
	DisableCollision()
}

type Visual interface {
	Hide()
}

// Effect is a one-shot effect spawned independently of the actor.
type Effect interface {
	NaturalDuration() (float64, error)
	Spawn(pos mgl64.Vec3, expiry float64)
}

type DeathEvent struct {
	Position mgl64.Vec3
	// EffectExpiry is how long the spawned effect lives, zero when none was spawned.
	EffectExpiry float64
}

// Deps are the optional collaborators torn down on death.
type Deps struct {
	Body     Body
	Collider Collider
	Visual   Visual
	Effect   Effect
}

// Controller is the one-way Alive to Dead transition of one actor.
type Controller struct {
	state     State
	deps      Deps
	listeners []func(DeathEvent)
}

func NewController(deps Deps) *Controller {
	return &Controller{deps: deps}
}

// Subscribe registers fn for the death notification.
func (c *Controller) Subscribe(fn func(DeathEvent)) {
	if c == nil || fn == nil {
		return
	}
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) State() State {
	if c == nil {
		return Alive
	}
	return c.state
}

func (c *Controller) Dead() bool {
	return c != nil && c.state == Dead
}

// TriggerDeath performs the transition. It returns false when already dead.
func (c *Controller) TriggerDeath() bool {
	if c == nil || c.state == Dead {
		return false
	}
	c.state = Dead

	var evt DeathEvent
	if c.deps.Body != nil {
		evt.Position = c.deps.Body.Position()
		c.deps.Body.Freeze()
	}
	if c.deps.Collider != nil {
		c.deps.Collider.DisableCollision()
	}
	if c.deps.Effect != nil {
		evt.EffectExpiry = effectExpiry(c.deps.Effect)
	}

	for _, fn := range c.listeners {
		fn(evt)
	}

	if c.deps.Visual != nil {
		c.deps.Visual.Hide()
	}
	if c.deps.Effect != nil {
		c.deps.Effect.Spawn(evt.Position, evt.EffectExpiry)
	}
	return true
}

func effectExpiry(e Effect) float64 {
	d, err := e.NaturalDuration()
	if err != nil || d <= 0 {
		d = FallbackEffectDuration
	}
	return d + effectExpiryPadding
}
