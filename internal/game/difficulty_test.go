package game

import (
	"math/rand"
	"testing"
)

func TestIsMilestone(t *testing.T) {
	for _, score := range []int{3, 6, 9, 30} {
		if !IsMilestone(score, 3) {
			t.Errorf("score %d should be a milestone", score)
		}
	}
	for _, score := range []int{0, 1, 2, 4, 5, 7} {
		if IsMilestone(score, 3) {
			t.Errorf("score %d should not be a milestone", score)
		}
	}
	if IsMilestone(3, 0) {
		t.Error("zero interval must never escalate")
	}
}

func TestNextTargetSizeSequence(t *testing.T) {
	size := 60.0
	var got []float64
	for i := 0; i < 9; i++ {
		got = append(got, size)
		size = NextTargetSize(size, 5, 25)
	}

	want := []float64{60, 55, 50, 45, 40, 35, 30, 30, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", got, want)
		}
	}
}

func TestRandomHueIsSaturated(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		c := RandomHue(rng)
		h, s, l := c.Hsl()
		if h < 0 || h >= 360 {
			t.Fatalf("hue %v out of range", h)
		}
		if s < 0.99 || l < 0.49 || l > 0.51 {
			t.Fatalf("expected full saturation and mid lightness, got s=%v l=%v", s, l)
		}
	}
}
