package common

import (
	"math"
	"testing"
)

func TestTween(t *testing.T) {
	tw := NewTween(1, 0.4, 0.1)
	if v := tw.Advance(0.05); math.Abs(v-0.7) > 1e-9 {
		t.Fatalf("halfway value = %v, want 0.7", v)
	}
	if tw.Done() {
		t.Fatalf("tween finished early")
	}
	if v := tw.Advance(1); v != 0.4 || !tw.Done() {
		t.Fatalf("expected clamped end value 0.4, got %v done=%v", v, tw.Done())
	}
	if v := tw.Advance(1); v != 0.4 {
		t.Fatalf("finished tween must hold its value, got %v", v)
	}

	tw.Restart(1, 0.5)
	if tw.From != 0.4 || tw.Done() {
		t.Fatalf("restart must begin at the current value")
	}
	if v := tw.Advance(0.25); math.Abs(v-0.7) > 1e-9 {
		t.Fatalf("restarted value = %v, want 0.7", v)
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := NewTween(0, 1, 0)
	if v := tw.Advance(0); v != 1 || !tw.Done() {
		t.Fatalf("zero duration must complete immediately, got %v", v)
	}
	var nilTween *Tween
	if nilTween.Advance(1) != 0 || !nilTween.Done() {
		t.Fatalf("nil tween must be inert")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if Lerp(2, 4, 0.5) != 3 {
		t.Fatalf("lerp midpoint wrong")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(false, "warn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewLogger(true, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if OrNop(nil) == nil {
		t.Fatalf("OrNop must never return nil")
	}
}
