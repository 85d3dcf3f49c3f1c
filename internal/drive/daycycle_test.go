package drive

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPhase(t *testing.T) {
	cases := []struct {
		t, cycle, want float64
	}{
		{0, 60, 0},
		{15, 60, 0.25},
		{30, 60, 0.5},
		{45, 60, 0.75},
		{60, 60, 0},
		{90, 60, 0.5},
		{-15, 60, 0.75},
		{1_700_000_015, 60, 0.25 + float64(1_700_000_000%60)/60},
		{10, 0, 0},
	}
	for _, tc := range cases {
		got := Phase(tc.t, tc.cycle)
		want := math.Mod(tc.want, 1)
		if !near(got, want) {
			t.Errorf("Phase(%v, %v) = %v, want %v", tc.t, tc.cycle, got, want)
		}
		if got < 0 || got >= 1 {
			t.Errorf("Phase(%v, %v) = %v outside [0,1)", tc.t, tc.cycle, got)
		}
	}
}

func TestSkyHardCutover(t *testing.T) {
	if SkyFor(0.25) != DaySky {
		t.Error("phase 0.25 should use the day palette")
	}
	if SkyFor(0.4999) != DaySky {
		t.Error("phase just before 0.5 should still be day")
	}
	if SkyFor(0.5) != NightSky {
		t.Error("phase 0.5 should switch to night")
	}
	if SkyFor(0.75) != NightSky {
		t.Error("phase 0.75 should use the night palette")
	}
}

func TestCelestialArc(t *testing.T) {
	vp := Viewport{W: 1000, H: 800}
	radius := 400.0
	cx, cy := 500.0, 800*0.18+radius*0.5

	cases := []struct {
		phase float64
		kind  BodyKind
		x, y  float64
	}{
		{0, BodySun, cx - radius, cy},     // sunrise, far left
		{0.25, BodySun, cx, cy - radius},  // noon, top of arc
		{0.5, BodyMoon, cx - radius, cy},  // cutover, moon at arc start
		{0.75, BodyMoon, cx, cy - radius}, // midnight
		{0.999999, BodyMoon, cx + radius, cy},
	}
	for _, tc := range cases {
		c := CelestialFor(tc.phase, vp)
		if c.Kind != tc.kind {
			t.Errorf("phase %v: kind %v, want %v", tc.phase, c.Kind, tc.kind)
		}
		if math.Abs(c.X-tc.x) > 1e-2 || math.Abs(c.Y-tc.y) > 1e-2 {
			t.Errorf("phase %v: at (%.3f, %.3f), want (%.3f, %.3f)", tc.phase, c.X, c.Y, tc.x, tc.y)
		}
	}
	if start := CelestialFor(0, vp); !near(start.Angle, math.Pi) {
		t.Errorf("sun starts at angle %v, want π", start.Angle)
	}
}

func TestCycleExample(t *testing.T) {
	vp := Viewport{W: 1280, H: 720}
	at0 := CelestialFor(Phase(0, 60), vp)
	at30 := CelestialFor(Phase(30, 60), vp)
	if at0.Kind != BodySun || IsNight(Phase(0, 60)) {
		t.Error("t=0 should be day with the sun")
	}
	if at30.Kind != BodyMoon || !IsNight(Phase(30, 60)) {
		t.Error("t=30 should be night with the moon")
	}
	if !near(at0.X, at30.X) || !near(at0.Y, at30.Y) {
		t.Error("moon should start where the sun started")
	}
}

func TestStarField(t *testing.T) {
	stars := NewStarField(StarCount, 42)
	if len(stars) != StarCount {
		t.Fatalf("got %d stars", len(stars))
	}
	for i, s := range stars {
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= StarMaxY {
			t.Errorf("star %d position (%v, %v) out of range", i, s.X, s.Y)
		}
		if s.R < StarMinRadius || s.R >= StarMinRadius+StarRadiusVar {
			t.Errorf("star %d radius %v out of range", i, s.R)
		}
		if s.Twinkle < 0 || s.Twinkle >= 2*math.Pi {
			t.Errorf("star %d twinkle %v out of range", i, s.Twinkle)
		}
	}
	again := NewStarField(StarCount, 42)
	for i := range stars {
		if stars[i] != again[i] {
			t.Fatal("same seed produced a different field")
		}
	}
}

func TestStarAlphaBounds(t *testing.T) {
	s := Star{Twinkle: 1.3}
	lo, hi := 1.0, 0.0
	for i := 0; i < 1000; i++ {
		a := StarAlpha(s, float64(i)*0.01)
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	if lo < 0.4*0.8-1e-9 || hi > 0.8+1e-9 {
		t.Errorf("alpha range [%v, %v] outside [0.32, 0.8]", lo, hi)
	}
	if hi-lo < 0.3 {
		t.Errorf("alpha barely changes: [%v, %v]", lo, hi)
	}
}
