// Package hudtext rasterises outlined HUD strings into images the host
// uploads as textures.
package hudtext

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"

	"cruise/internal/drive"
	"cruise/internal/logging"
)

// NewFace returns Go Bold at size pixels, or basicfont when the embedded
// TrueType data cannot be parsed.
func NewFace(size float64, log logging.Logger) font.Face {
	if log == nil {
		log = logging.NoopLogger{}
	}
	tt, err := truetype.Parse(gobold.TTF)
	if err != nil {
		log.Errorf("hud", "truetype parse failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Label is a rendered string. The pen origin used when drawing sits at
// (OriginX, Baseline) inside Image.
type Label struct {
	Image    *image.NRGBA
	OriginX  int
	Baseline int
}

// Rasterize draws text with its outline first and the fill on top, the
// way a canvas strokeText/fillText pair does.
func Rasterize(face font.Face, text string, style drive.TextStyle) *Label {
	m := face.Metrics()
	pad := style.StrokeWidth/2 + 1
	adv := font.MeasureString(face, text).Ceil()
	ascent := m.Ascent.Ceil()
	w := adv + 2*pad
	h := ascent + m.Descent.Ceil() + 2*pad

	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	label := &Label{Image: img, OriginX: pad, Baseline: pad + ascent}

	if r := style.StrokeWidth / 2; r > 0 {
		stroke := image.NewUniform(toColor(style.Stroke))
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				drawString(img, face, stroke, text, label.OriginX+dx, label.Baseline+dy)
			}
		}
	}
	drawString(img, face, image.NewUniform(toColor(style.Color)), text, label.OriginX, label.Baseline)
	return label
}

func drawString(dst draw.Image, face font.Face, src image.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func toColor(c drive.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Cache keeps one label per distinct string and style. Most HUD strings
// repeat every frame, so rasterising once and reusing is the common path.
type Cache struct {
	face    font.Face
	limit   int
	entries map[key]*Label
	// OnEvict is called for labels dropped from the cache so the owner can
	// release whatever it built from them.
	OnEvict func(*Label)
}

type key struct {
	text  string
	style drive.TextStyle
}

func NewCache(face font.Face, limit int) *Cache {
	return &Cache{face: face, limit: limit, entries: make(map[key]*Label)}
}

// Get returns the label for text, rasterising it on first use. When the
// cache is full it is emptied before the new entry is added.
func (c *Cache) Get(text string, style drive.TextStyle) (*Label, bool) {
	k := key{text, style}
	if l, ok := c.entries[k]; ok {
		return l, false
	}
	if c.limit > 0 && len(c.entries) >= c.limit {
		c.Clear()
	}
	l := Rasterize(c.face, text, style)
	c.entries[k] = l
	return l, true
}

func (c *Cache) Len() int { return len(c.entries) }

func (c *Cache) Clear() {
	for k, l := range c.entries {
		if c.OnEvict != nil {
			c.OnEvict(l)
		}
		delete(c.entries, k)
	}
}
