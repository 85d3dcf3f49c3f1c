package drive

import "math"

// Phase is the normalized position in the day/night cycle, in [0,1).
// t is wall-clock seconds; cycle is the cycle length in seconds.
func Phase(t, cycle float64) float64 {
	if cycle <= 0 {
		return 0
	}
	p := floorMod(t, cycle) / cycle
	if p >= 1 {
		p = 0
	}
	return p
}

// IsNight reports whether the phase lies in the second half of the cycle.
func IsNight(phase float64) bool { return phase >= NightStart }

// SkyFor picks the day or night gradient. There is no blending between the
// two palettes; the switch is a hard cut at NightStart.
func SkyFor(phase float64) Sky {
	if IsNight(phase) {
		return NightSky
	}
	return DaySky
}

type BodyKind int

const (
	BodySun BodyKind = iota
	BodyMoon
)

func (k BodyKind) String() string {
	if k == BodyMoon {
		return "moon"
	}
	return "sun"
}

// Celestial is the sun or moon position for one frame, in screen pixels.
type Celestial struct {
	Kind  BodyKind
	X, Y  float64
	Angle float64
}

// CelestialFor places the body of the current half-cycle on a semicircular
// arc. Each body travels the whole arc, left to right, during its half.
func CelestialFor(phase float64, vp Viewport) Celestial {
	radius := float64(vp.W) * ArcRadiusFrac
	cx := float64(vp.W) / 2
	cy := float64(vp.H)*ArcCenterYFrac + radius*0.5

	kind := BodySun
	n := math.Min(phase*2, 1)
	if IsNight(phase) {
		kind = BodyMoon
		n = math.Max((phase-NightStart)*2, 0)
	}
	n = clampF(n, 0, 1)
	angle := math.Pi - n*math.Pi
	return Celestial{
		Kind:  kind,
		X:     cx + radius*math.Cos(angle),
		Y:     cy - radius*math.Sin(angle),
		Angle: angle,
	}
}
