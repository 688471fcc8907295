package ability

// Multipliers scale the base jump force for the jumping bands.
type Multipliers struct {
	Boosted   float64 `yaml:"boosted"`
	Normal    float64 `yaml:"normal"`
	HalfPower float64 `yaml:"half_power"`
}

func DefaultMultipliers() Multipliers {
	return Multipliers{Boosted: 2, Normal: 1, HalfPower: 0.5}
}

// Capabilities are the movement permissions granted by a State.
type Capabilities struct {
	CanMove   bool
	CanJump   bool
	IsFlying  bool
	JumpForce float64
}

// Derive returns the capability row for s.
func Derive(s State, baseJumpForce float64, m Multipliers) Capabilities {
	switch s {
	case Flying:
		return Capabilities{CanMove: true, IsFlying: true}
	case Boosted:
		return Capabilities{CanMove: true, CanJump: true, JumpForce: baseJumpForce * m.Boosted}
	case Normal:
		return Capabilities{CanMove: true, CanJump: true, JumpForce: baseJumpForce * m.Normal}
	case HalfPower:
		return Capabilities{CanMove: true, CanJump: true, JumpForce: baseJumpForce * m.HalfPower}
	case NoJump:
		return Capabilities{CanMove: true}
	default:
		return Capabilities{}
	}
}

// Gate holds the current band and capabilities of one actor.
type Gate struct {
	thresholds    Thresholds
	multipliers   Multipliers
	baseJumpForce float64

	state State
	caps  Capabilities
}

// NewGate validates the thresholds and starts in the Normal band.
func NewGate(t Thresholds, m Multipliers, baseJumpForce float64) (*Gate, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	g := &Gate{thresholds: t, multipliers: m, baseJumpForce: baseJumpForce, state: Normal}
	g.caps = Derive(Normal, baseJumpForce, m)
	return g, nil
}

// Update reclassifies v and reports whether the band changed.
func (g *Gate) Update(v float64) (Capabilities, bool) {
	if g == nil {
		return Capabilities{}, false
	}
	next := g.thresholds.Classify(v)
	changed := next != g.state
	g.state = next
	g.caps = Derive(next, g.baseJumpForce, g.multipliers)
	return g.caps, changed
}

// Reconfigure swaps tuning in place. The band is recomputed on the next Update.
func (g *Gate) Reconfigure(t Thresholds, m Multipliers, baseJumpForce float64) error {
	if g == nil {
		return nil
	}
	if err := t.Validate(); err != nil {
		return err
	}
	g.thresholds = t
	g.multipliers = m
	g.baseJumpForce = baseJumpForce
	g.caps = Derive(g.state, baseJumpForce, m)
	return nil
}

func (g *Gate) State() State {
	if g == nil {
		return NoMove
	}
	return g.state
}

func (g *Gate) Capabilities() Capabilities {
	if g == nil {
		return Capabilities{}
	}
	return g.caps
}

func (g *Gate) Thresholds() Thresholds {
	if g == nil {
		return Thresholds{}
	}
	return g.thresholds
}
