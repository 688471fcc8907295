package lifecycle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type recorder struct {
	calls []string
}

type fakeBody struct {
	r      *recorder
	pos    mgl64.Vec3
	frozen int
}

func (b *fakeBody) Freeze()              { b.frozen++; b.r.calls = append(b.r.calls, "freeze") }
func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }

type fakeCollider struct{ r *recorder }

func (c fakeCollider) DisableCollision() { c.r.calls = append(c.r.calls, "collision") }

type fakeVisual struct{ r *recorder }

func (v fakeVisual) Hide() { v.r.calls = append(v.r.calls, "hide") }

type fakeEffect struct {
	r        *recorder
	duration float64
	err      error
	spawned  []mgl64.Vec3
	expiry   float64
}

func (e *fakeEffect) NaturalDuration() (float64, error) { return e.duration, e.err }
func (e *fakeEffect) Spawn(pos mgl64.Vec3, expiry float64) {
	e.r.calls = append(e.r.calls, "effect")
	e.spawned = append(e.spawned, pos)
	e.expiry = expiry
}

func TestTriggerDeathOrderAndIdempotence(t *testing.T) {
	r := &recorder{}
	body := &fakeBody{r: r, pos: mgl64.Vec3{1, 2, 0}}
	effect := &fakeEffect{r: r, duration: 1.5}
	c := NewController(Deps{Body: body, Collider: fakeCollider{r}, Visual: fakeVisual{r}, Effect: effect})

	var events []DeathEvent
	c.Subscribe(func(evt DeathEvent) {
		r.calls = append(r.calls, "notify")
		events = append(events, evt)
	})

	if !c.TriggerDeath() {
		t.Fatalf("first trigger must transition")
	}
	if c.TriggerDeath() {
		t.Fatalf("second trigger must be a no-op")
	}

	want := []string{"freeze", "collision", "notify", "hide", "effect"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", r.calls, want)
		}
	}
	if len(events) != 1 || events[0].Position != body.pos {
		t.Fatalf("expected one event at body position, got %+v", events)
	}
	if !c.Dead() || c.State() != Dead {
		t.Fatalf("expected dead state")
	}
	if body.frozen != 1 || len(effect.spawned) != 1 {
		t.Fatalf("teardown ran more than once: frozen=%d spawned=%d", body.frozen, len(effect.spawned))
	}
	if math.Abs(effect.expiry-1.6) > 1e-9 {
		t.Fatalf("expiry = %v, want 1.6", effect.expiry)
	}
}

func TestEffectDurationFallback(t *testing.T) {
	r := &recorder{}
	effect := &fakeEffect{r: r, err: ErrUnknownDuration}
	c := NewController(Deps{Effect: effect})
	c.TriggerDeath()
	if math.Abs(effect.expiry-(FallbackEffectDuration+0.1)) > 1e-9 {
		t.Fatalf("expiry = %v, want fallback", effect.expiry)
	}
}

func TestTriggerDeathWithoutCollaborators(t *testing.T) {
	c := NewController(Deps{})
	fired := 0
	c.Subscribe(func(DeathEvent) { fired++ })
	c.Subscribe(nil)
	if !c.TriggerDeath() || fired != 1 {
		t.Fatalf("expected bare controller to die and notify once, fired=%d", fired)
	}

	var nilCtrl *Controller
	if nilCtrl.TriggerDeath() || nilCtrl.Dead() {
		t.Fatalf("nil controller must be inert")
	}
}
