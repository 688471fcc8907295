package common

// Tween interpolates linearly from From to To over Duration seconds.
// A zero Duration completes on the first Advance.
type Tween struct {
	From     float64
	To       float64
	Duration float64
	Elapsed  float64
	active   bool
}

func NewTween(from, to, duration float64) Tween {
	return Tween{From: from, To: to, Duration: duration, active: true}
}

// Advance moves the tween forward by dt and returns the current value.
func (t *Tween) Advance(dt float64) float64 {
	if t == nil {
		return 0
	}
	if !t.active {
		return t.Value()
	}
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Duration <= 0 || t.Elapsed >= t.Duration {
		t.Elapsed = t.Duration
		t.active = false
	}
	return t.Value()
}

func (t *Tween) Value() float64 {
	if t == nil {
		return 0
	}
	if t.Duration <= 0 {
		return t.To
	}
	return Lerp(t.From, t.To, Clamp01(t.Elapsed/t.Duration))
}

// Restart retargets the tween from its current value.
func (t *Tween) Restart(to, duration float64) {
	if t == nil {
		return
	}
	t.From = t.Value()
	t.To = to
	t.Duration = duration
	t.Elapsed = 0
	t.active = true
}

func (t *Tween) Active() bool {
	return t != nil && t.active
}

func (t *Tween) Done() bool {
	return t == nil || !t.active
}
