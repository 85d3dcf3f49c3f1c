package drive

import (
	"fmt"
	"math"
)

type Viewport struct {
	W, H int
}

// Layout holds everything derived from the viewport. It is recomputed
// synchronously on every resize and never mid-frame.
type Layout struct {
	RoadY, RoadH int
	CarX, CarY   int
	ControlStep  int // arrow-key sensitivity, scales with window width
}

// NewLayout derives road band, car placement and control step from a viewport.
// The road band spans the full width, flush with the bottom edge.
func NewLayout(vp Viewport) Layout {
	roadH := int(math.Floor(float64(vp.H) * RoadBandFraction))
	roadY := vp.H - roadH
	step := int(math.Floor(float64(vp.W) * ControlFraction))
	if step < MinControlStep {
		step = MinControlStep
	}
	return Layout{
		RoadY:       roadY,
		RoadH:       roadH,
		CarX:        (vp.W - CarWidth) / 2,
		CarY:        roadY - CarHeight + CarOverlap,
		ControlStep: step,
	}
}

// FrameState is the whole animation state, passed through update-then-draw
// once per tick.
type FrameState struct {
	Viewport Viewport
	Layout   Layout

	Offset       float64 // road scroll, always in [0, tile width)
	Speed        int     // always in [MinSpeed, MaxSpeed]
	Accelerating bool

	Stars []Star

	// Audio surface shown on the HUD.
	AudioStatus string
	Muted       bool

	// AmbientStarted latches the first user interaction.
	AmbientStarted bool

	// RoadAspect is natural width/height of the road texture, 0 until loaded.
	RoadAspect float64
}

func NewFrameState(seed uint64) *FrameState {
	return &FrameState{
		Speed: InitialSpeed,
		Stars: NewStarField(StarCount, seed),
	}
}

// Resize recomputes the viewport-derived layout. The caller is expected to
// redraw immediately afterwards.
func (s *FrameState) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.Viewport = Viewport{W: w, H: h}
	s.Layout = NewLayout(s.Viewport)
	// A shorter band shrinks the tile; keep the offset inside it.
	if tw := s.TileWidth(); tw > 0 && s.Offset >= tw {
		s.Offset = 0
	}
}

// SetRoadSize records the natural size of the road texture once it loads.
func (s *FrameState) SetRoadSize(natW, natH int) {
	if natW <= 0 || natH <= 0 {
		s.RoadAspect = 0
		return
	}
	s.RoadAspect = float64(natW) / float64(natH)
	if tw := s.TileWidth(); tw > 0 && s.Offset >= tw {
		s.Offset = 0
	}
}

// TileWidth is the current road tile width, 0 while the texture is missing.
func (s *FrameState) TileWidth() float64 {
	if s.RoadAspect <= 0 || s.Layout.RoadH <= 0 {
		return 0
	}
	return float64(s.Layout.RoadH) * s.RoadAspect
}

// Advance moves the road by the current speed and wraps at the tile width.
// Nothing moves until the road texture is known.
func (s *FrameState) Advance() {
	tileWidth := s.TileWidth()
	if tileWidth <= 0 {
		return
	}
	s.Offset += float64(s.Speed)
	if s.Offset >= tileWidth {
		s.Offset = 0
	}
}

// Accelerate applies one speed step on the press edge only. It reports
// whether this call was an edge, in which case the accelerate cue starts.
func (s *FrameState) Accelerate() bool {
	if s.Accelerating {
		return false
	}
	s.Speed = clamp(s.Speed+1, MinSpeed, MaxSpeed)
	s.Accelerating = true
	return true
}

// ReleaseAccelerate re-arms the accelerate edge.
func (s *FrameState) ReleaseAccelerate() {
	s.Accelerating = false
}

// Decelerate applies one step on every press and key repeat.
func (s *FrameState) Decelerate() {
	s.Speed = clamp(s.Speed-1, MinSpeed, MaxSpeed)
}

// DisplayedKmh converts scroll units to the speed readout.
func DisplayedKmh(speed int) int {
	return int(math.Round(float64(speed) * KmhPerUnit))
}

func SpeedLabel(speed int) string {
	return fmt.Sprintf("Speed: %d km/h", DisplayedKmh(speed))
}
