package drive

// Image is the part of a loaded picture the scene needs: whether it is
// usable yet and its natural size.
type Image interface {
	Loaded() bool
	Size() (w, h int)
}

// TextStyle describes an outlined HUD string. Y coordinates passed with it
// are baselines.
type TextStyle struct {
	Color       RGB
	Stroke      RGB
	StrokeWidth int
}

// StarSprite is one star resolved to screen space for the current frame.
type StarSprite struct {
	X, Y  float64
	R     float64
	Alpha float64
}

// Canvas is the drawing surface the scene composites onto. Each call paints
// over whatever is already there.
type Canvas interface {
	FillGradient(x, y, w, h float64, sky Sky)
	FillRect(x, y, w, h float64, col RGB)
	DrawImage(img Image, x, y, w, h float64)
	DrawCelestial(c Celestial)
	DrawStars(stars []StarSprite)
	DrawText(text string, x, y float64, style TextStyle)
}

// Images are the three picture assets. Any of them may be nil.
type Images struct {
	Road       Image
	Car        Image
	Background Image
}

func loaded(img Image) bool {
	if img == nil || !img.Loaded() {
		return false
	}
	w, h := img.Size()
	return w > 0 && h > 0
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MuteButtonRect is the clickable ambient-audio toggle in the top-right corner.
func MuteButtonRect(vp Viewport) Rect {
	const w, h, margin = 190.0, 44.0, 16.0
	return Rect{X: float64(vp.W) - w - margin, Y: margin, W: w, H: h}
}

func MuteLabel(muted bool) string {
	if muted {
		return "SOUND OFF"
	}
	return "SOUND ON"
}

var hudStyle = TextStyle{Color: Palette.Text, Stroke: Palette.TextStroke, StrokeWidth: HUDStroke}

// ComposeFrame redraws the whole frame. now is wall-clock seconds and
// cycle the day/night length in seconds.
func ComposeFrame(c Canvas, s *FrameState, imgs Images, now, cycle float64) {
	vp := s.Viewport
	if vp.W <= 0 || vp.H <= 0 {
		return
	}
	w, h := float64(vp.W), float64(vp.H)
	phase := Phase(now, cycle)

	c.FillGradient(0, 0, w, h, SkyFor(phase))
	drawBackground(c, s, imgs.Background)
	c.DrawCelestial(CelestialFor(phase, vp))
	if IsNight(phase) {
		c.DrawStars(StarSprites(s.Stars, vp, now))
	}
	drawRoad(c, s, imgs.Road)
	drawCar(c, s, imgs.Car)
	drawHUD(c, s)
}

// The background scrolls in step with the road and tiles at viewport width.
func drawBackground(c Canvas, s *FrameState, img Image) {
	if !loaded(img) {
		return
	}
	w, h := float64(s.Viewport.W), float64(s.Viewport.H)
	y := float64(BackgroundDrop) // full-height image pushed down behind the road
	for x := -floorMod(s.Offset, w); x < w; x += w {
		c.DrawImage(img, x, y, w, h)
	}
}

func drawRoad(c Canvas, s *FrameState, img Image) {
	l := s.Layout
	w := float64(s.Viewport.W)
	tile := s.TileWidth()
	if !loaded(img) || tile <= 0 {
		c.FillRect(0, float64(l.RoadY), w, float64(l.RoadH), Palette.RoadPlaceholder)
		return
	}
	x := -s.Offset
	for x < w {
		c.DrawImage(img, x, float64(l.RoadY), tile, float64(l.RoadH))
		x += tile
	}
	// One more tile so the seam never shows while scrolling.
	if s.Offset > 0 {
		c.DrawImage(img, x, float64(l.RoadY), tile, float64(l.RoadH))
	}
}

func drawCar(c Canvas, s *FrameState, img Image) {
	l := s.Layout
	if !loaded(img) {
		c.FillRect(float64(l.CarX), float64(l.CarY), CarWidth, CarHeight, Palette.CarPlaceholder)
		return
	}
	c.DrawImage(img, float64(l.CarX), float64(l.CarY), CarWidth, CarHeight)
}

func drawHUD(c Canvas, s *FrameState) {
	c.DrawText(SpeedLabel(s.Speed), HUDTextX, HUDTextY, hudStyle)
	if s.AudioStatus != "" {
		errStyle := hudStyle
		errStyle.Color = Palette.Error
		c.DrawText(s.AudioStatus, HUDTextX, HUDTextY+HUDLineGap, errStyle)
	}

	btn := MuteButtonRect(s.Viewport)
	btnStyle := hudStyle
	if s.Muted {
		btnStyle.Color = Palette.ButtonMuted
	} else {
		btnStyle.Color = Palette.Button
	}
	c.DrawText(MuteLabel(s.Muted), btn.X+12, btn.Y+btn.H-12, btnStyle)
}

// StarSprites resolves the normalized star field into screen space with the
// twinkle alpha for wall-clock time now.
func StarSprites(stars []Star, vp Viewport, now float64) []StarSprite {
	out := make([]StarSprite, len(stars))
	for i, st := range stars {
		out[i] = StarSprite{
			X:     st.X * float64(vp.W),
			Y:     st.Y * float64(vp.H),
			R:     st.R,
			Alpha: StarAlpha(st, now),
		}
	}
	return out
}
