package drive

import (
	"math"
	"testing"
)

func TestMaxSpeedMatchesTopSpeed(t *testing.T) {
	if MaxSpeed != 19 {
		t.Fatalf("MaxSpeed = %d, want 19", MaxSpeed)
	}
}

func TestNewLayout(t *testing.T) {
	cases := []struct {
		vp   Viewport
		want Layout
	}{
		{Viewport{W: 1280, H: 720}, Layout{RoadY: 576, RoadH: 144, CarX: 440, CarY: 476, ControlStep: 19}},
		{Viewport{W: 1920, H: 1081}, Layout{RoadY: 865, RoadH: 216, CarX: 760, CarY: 765, ControlStep: 28}},
		{Viewport{W: 300, H: 99}, Layout{RoadY: 80, RoadH: 19, CarX: -50, CarY: -20, ControlStep: 10}},
	}
	for _, tc := range cases {
		if got := NewLayout(tc.vp); got != tc.want {
			t.Errorf("NewLayout(%v) = %+v, want %+v", tc.vp, got, tc.want)
		}
	}
}

func TestResizeFlushRoadAndCenteredCar(t *testing.T) {
	s := NewFrameState(1)
	for _, vp := range []Viewport{{800, 600}, {1024, 768}, {2560, 1440}, {401, 333}} {
		s.Resize(vp.W, vp.H)
		l := s.Layout
		if l.RoadH != int(math.Floor(float64(vp.H)*0.2)) {
			t.Errorf("%v: road height %d", vp, l.RoadH)
		}
		if l.RoadY+l.RoadH != vp.H {
			t.Errorf("%v: road not flush with bottom", vp)
		}
		if l.CarX != (vp.W-CarWidth)/2 {
			t.Errorf("%v: car x %d", vp, l.CarX)
		}
		if l.CarY != l.RoadY-CarHeight+CarOverlap {
			t.Errorf("%v: car y %d", vp, l.CarY)
		}
	}
}

func TestAdvanceWrapsWithinTile(t *testing.T) {
	s := NewFrameState(1)
	s.Resize(1280, 720)
	s.SetRoadSize(512, 128) // tile = 144 * 4 = 576
	tile := s.TileWidth()
	if tile != 576 {
		t.Fatalf("tile width = %v, want 576", tile)
	}
	for speed := MinSpeed; speed <= MaxSpeed; speed++ {
		s.Speed = speed
		for n := 0; n < 2000; n++ {
			s.Advance()
			if s.Offset < 0 || s.Offset >= tile {
				t.Fatalf("speed %d frame %d: offset %v outside [0,%v)", speed, n, s.Offset, tile)
			}
		}
	}
}

func TestAdvanceWrapsToZero(t *testing.T) {
	s := NewFrameState(1)
	s.Resize(100, 100) // road band 20
	s.SetRoadSize(2, 1) // tile 40
	s.Speed = 19
	s.Advance()
	s.Advance()
	if s.Offset != 38 {
		t.Fatalf("offset = %v, want 38", s.Offset)
	}
	s.Advance()
	if s.Offset != 0 {
		t.Fatalf("offset = %v, want wrap to 0", s.Offset)
	}
}

func TestAdvanceWaitsForRoadTexture(t *testing.T) {
	s := NewFrameState(1)
	s.Resize(800, 600)
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if s.Offset != 0 {
		t.Fatalf("offset moved to %v without a road texture", s.Offset)
	}
}

func TestResizeKeepsOffsetInsideShrunkTile(t *testing.T) {
	s := NewFrameState(1)
	s.Resize(1000, 1000) // band 200
	s.SetRoadSize(1, 1)  // tile 200
	s.Offset = 150
	s.Resize(1000, 500) // band 100, tile 100
	if s.Offset != 0 {
		t.Fatalf("offset = %v after shrink, want 0", s.Offset)
	}
	s.Offset = 50
	s.Resize(1000, 1000)
	if s.Offset != 50 {
		t.Fatalf("offset = %v after grow, want 50", s.Offset)
	}
}

func TestSpeedBounds(t *testing.T) {
	s := NewFrameState(1)
	if s.Speed != InitialSpeed {
		t.Fatalf("initial speed %d", s.Speed)
	}
	for i := 0; i < 50; i++ {
		s.Decelerate()
		if s.Speed < MinSpeed {
			t.Fatalf("speed %d below min", s.Speed)
		}
	}
	if s.Speed != MinSpeed {
		t.Fatalf("speed = %d, want %d", s.Speed, MinSpeed)
	}
	for i := 0; i < 50; i++ {
		prev := s.Speed
		s.Accelerate()
		s.ReleaseAccelerate()
		if s.Speed > MaxSpeed {
			t.Fatalf("speed %d above max", s.Speed)
		}
		if prev < MaxSpeed && s.Speed != prev+1 {
			t.Fatalf("accelerate moved %d -> %d", prev, s.Speed)
		}
	}
	if s.Speed != MaxSpeed {
		t.Fatalf("speed = %d, want %d", s.Speed, MaxSpeed)
	}
}

func TestAccelerateIsEdgeTriggered(t *testing.T) {
	s := NewFrameState(1)
	if !s.Accelerate() {
		t.Fatal("first press should be an edge")
	}
	for i := 0; i < 30; i++ {
		if s.Accelerate() {
			t.Fatal("held key produced another edge")
		}
	}
	if s.Speed != InitialSpeed+1 {
		t.Fatalf("speed = %d, want %d", s.Speed, InitialSpeed+1)
	}
	s.ReleaseAccelerate()
	if !s.Accelerate() {
		t.Fatal("press after release should be an edge")
	}
	if s.Speed != InitialSpeed+2 {
		t.Fatalf("speed = %d, want %d", s.Speed, InitialSpeed+2)
	}
}

func TestDisplayedKmh(t *testing.T) {
	cases := map[int]int{1: 22, 4: 86, 10: 216, 19: 410}
	for speed, want := range cases {
		if got := DisplayedKmh(speed); got != want {
			t.Errorf("DisplayedKmh(%d) = %d, want %d", speed, got, want)
		}
	}
	if got := SpeedLabel(4); got != "Speed: 86 km/h" {
		t.Errorf("SpeedLabel(4) = %q", got)
	}
}
