package drive

import "math"

// Star positions are normalized to the viewport. Twinkle is the star's own
// phase offset; only the per-frame alpha changes after generation.
type Star struct {
	X, Y    float64
	R       float64
	Twinkle float64
}

// NewStarField scatters n stars over the upper half of the sky.
func NewStarField(n int, seed uint64) []Star {
	r := NewRand(seed ^ 0x57A125)
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:       r.Float64(),
			Y:       r.Float64() * StarMaxY,
			R:       r.Float64()*StarRadiusVar + StarMinRadius,
			Twinkle: r.Float64() * math.Pi * 2,
		}
	}
	return stars
}

// StarAlpha is the star opacity at wall-clock time t (seconds).
func StarAlpha(s Star, t float64) float64 {
	tw := 0.7 + 0.3*math.Sin(t*StarTwinkleHz+s.Twinkle)
	return tw * 0.8
}
