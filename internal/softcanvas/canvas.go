// Package softcanvas rasterises frames on the CPU. The mobile host uses it
// and blits the result; it doubles as a reference for the GL renderer.
package softcanvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"

	"cruise/internal/assets"
	"cruise/internal/drive"
	"cruise/internal/hudtext"
)

// Picture is a decoded image for the software canvas. It satisfies
// drive.Image.
type Picture struct {
	anim  *assets.Animation
	start float64
}

// NewPicture wraps anim; animation time is measured from now.
func NewPicture(anim *assets.Animation, now float64) *Picture {
	return &Picture{anim: anim, start: now}
}

func (p *Picture) Loaded() bool { return p != nil && p.anim != nil && len(p.anim.Frames) > 0 }

func (p *Picture) Size() (int, int) { return p.anim.Width, p.anim.Height }

func (p *Picture) frame(now float64) *image.NRGBA {
	return p.anim.FrameAt(time.Duration((now - p.start) * float64(time.Second)))
}

type scaleKey struct {
	src  *image.NRGBA
	w, h int
}

// Canvas draws into an RGBA frame buffer. It implements drive.Canvas.
type Canvas struct {
	img  *image.RGBA
	text *hudtext.Cache
	now  float64

	// Scaled copies of source frames, keyed by destination size. Road
	// tiles and background copies reuse one entry per frame.
	scaled map[scaleKey]*image.RGBA
}

func New(text *hudtext.Cache) *Canvas {
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, 0, 0)),
		text:   text,
		scaled: make(map[scaleKey]*image.RGBA),
	}
}

// Begin prepares a w×h frame cleared to opaque black. now is the loop
// time used to pick animation frames.
func (c *Canvas) Begin(w, h int, now float64) {
	c.now = now
	if c.img.Bounds().Dx() != w || c.img.Bounds().Dy() != h {
		c.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
		clear(c.scaled)
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
}

// Image is the frame drawn since the last Begin.
func (c *Canvas) Image() *image.RGBA { return c.img }

func rgba(col drive.RGB) color.RGBA {
	return color.RGBA{R: col.R, G: col.G, B: col.B, A: 255}
}

func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func (c *Canvas) FillGradient(x, y, w, h float64, sky drive.Sky) {
	r := pixelRect(x, y, w, h).Intersect(c.img.Bounds())
	if r.Empty() || h <= 0 {
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		t := clamp01((float64(py) + 0.5 - y) / h)
		col := color.RGBA{
			R: lerp8(sky.Top.R, sky.Bottom.R, t),
			G: lerp8(sky.Top.G, sky.Bottom.G, t),
			B: lerp8(sky.Top.B, sky.Bottom.B, t),
			A: 255,
		}
		row := image.Rect(r.Min.X, py, r.Max.X, py+1)
		draw.Draw(c.img, row, image.NewUniform(col), image.Point{}, draw.Src)
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col drive.RGB) {
	draw.Draw(c.img, pixelRect(x, y, w, h), image.NewUniform(rgba(col)), image.Point{}, draw.Src)
}

func (c *Canvas) DrawImage(img drive.Image, x, y, w, h float64) {
	p, ok := img.(*Picture)
	if !ok || !p.Loaded() {
		return
	}
	dst := pixelRect(x, y, w, h)
	if dst.Empty() || !dst.Overlaps(c.img.Bounds()) {
		return
	}
	src := p.frame(c.now)
	scaled := c.scaledCopy(src, dst.Dx(), dst.Dy())
	draw.Draw(c.img, dst, scaled, image.Point{}, draw.Over)
}

func (c *Canvas) scaledCopy(src *image.NRGBA, w, h int) *image.RGBA {
	k := scaleKey{src, w, h}
	if s, ok := c.scaled[k]; ok {
		return s
	}
	s := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(s, s.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	c.scaled[k] = s
	return s
}

func (c *Canvas) DrawCelestial(body drive.Celestial) {
	const extent = 110
	r := image.Rect(
		int(body.X)-extent, int(body.Y)-extent,
		int(body.X)+extent, int(body.Y)+extent,
	).Intersect(c.img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			dx := float64(px) + 0.5 - body.X
			dy := float64(py) + 0.5 - body.Y
			var col [3]float64
			var a float64
			if body.Kind == drive.BodyMoon {
				col, a = MoonShade(dx, dy)
			} else {
				col, a = SunShade(math.Hypot(dx, dy))
			}
			c.blend(px, py, col, a)
		}
	}
}

func (c *Canvas) DrawStars(stars []drive.StarSprite) {
	for _, s := range stars {
		ext := int(math.Ceil(s.R)) + 1
		cx, cy := int(s.X), int(s.Y)
		for py := cy - ext; py <= cy+ext; py++ {
			for px := cx - ext; px <= cx+ext; px++ {
				d := math.Hypot(float64(px)+0.5-s.X, float64(py)+0.5-s.Y)
				cover := clamp01(s.R - d + 0.5)
				if cover > 0 {
					c.blend(px, py, [3]float64{1, 1, 1}, s.Alpha*cover)
				}
			}
		}
	}
}

func (c *Canvas) DrawText(text string, x, y float64, style drive.TextStyle) {
	if text == "" || c.text == nil {
		return
	}
	label, _ := c.text.Get(text, style)
	at := image.Pt(int(math.Round(x))-label.OriginX, int(math.Round(y))-label.Baseline)
	draw.Draw(c.img, label.Image.Bounds().Add(at), label.Image, image.Point{}, draw.Over)
}

// blend composites a straight-alpha colour over one pixel.
func (c *Canvas) blend(x, y int, col [3]float64, a float64) {
	if a <= 0 || !(image.Point{X: x, Y: y}).In(c.img.Bounds()) {
		return
	}
	a = clamp01(a)
	i := c.img.PixOffset(x, y)
	pix := c.img.Pix[i : i+4 : i+4]
	for k := 0; k < 3; k++ {
		pix[k] = uint8(math.Round(col[k]*255*a + float64(pix[k])*(1-a)))
	}
	pix[3] = uint8(math.Round(255*a + float64(pix[3])*(1-a)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func ramp(d, r0, r1 float64) float64 {
	return clamp01((d - r0) / (r1 - r0))
}

// SunShade is the sun disc at distance d from its centre: a radial
// gradient from pale yellow to transparent gold inside radius 48, over a
// soft yellow halo.
func SunShade(d float64) ([3]float64, float64) {
	inner := [4]float64{1, 1, 0.706, 1}
	mid := [4]float64{1, 0.863, 0.314, 0.7}
	outer := [4]float64{1, 0.863, 0.314, 0}

	var disc [4]float64
	if d <= 48 {
		t := ramp(d, 10, 60)
		if t < 0.5 {
			disc = mix4(inner, mid, t*2)
		} else {
			disc = mix4(mid, outer, t*2-1)
		}
	}
	glow := (1 - ramp(d, 30, 108)) * 0.45
	a := disc[3] + glow*(1-disc[3])
	halo := [3]float64{1, 1, 0}
	var col [3]float64
	for k := range col {
		col[k] = halo[k] + (disc[k]-halo[k])*disc[3]
	}
	return col, a
}

// MoonShade is the moon at offset (dx, dy) from its centre: a white disc
// of radius 36 with a second disc offset up and right, fading at the rim,
// inside a pale halo.
func MoonShade(dx, dy float64) ([3]float64, float64) {
	d := math.Hypot(dx, dy)
	inside := d <= 36 || math.Hypot(dx-16, dy+6) <= 32
	var a float64
	if inside {
		a = 1 - ramp(d, 30.4, 40)
	}
	glow := (1 - ramp(d, 24, 86)) * 0.35
	return [3]float64{1, 1, 1}, a + glow*(1-a)
}

func mix4(a, b [4]float64, t float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
