package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxTextureSide caps uploaded texture dimensions. Larger sources are
// scaled down with their aspect ratio preserved.
const MaxTextureSide = 4096

// defaultGIFDelay matches what browsers use for zero or 10ms frame delays.
const defaultGIFDelay = 100 * time.Millisecond

type Frame struct {
	Image *image.NRGBA
	Delay time.Duration
}

// Animation is a decoded picture. Still images have a single frame.
// Width and Height are the natural size of the source, which may be larger
// than the frames after downscaling.
type Animation struct {
	Frames []Frame
	Width  int
	Height int
	total  time.Duration
}

// FrameAt returns the frame visible after elapsed time, looping forever.
func (a *Animation) FrameAt(elapsed time.Duration) *image.NRGBA {
	if len(a.Frames) == 0 {
		return nil
	}
	return a.Frames[a.FrameIndex(elapsed)].Image
}

// FrameIndex is the index of the frame FrameAt would return.
func (a *Animation) FrameIndex(elapsed time.Duration) int {
	if len(a.Frames) <= 1 || a.total <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := elapsed % a.total
	for i, f := range a.Frames {
		if t < f.Delay {
			return i
		}
		t -= f.Delay
	}
	return len(a.Frames) - 1
}

func (a *Animation) Animated() bool { return len(a.Frames) > 1 }

// Decode reads a still image or an animated GIF. name only selects the
// decoder by extension; content sniffing handles the rest.
func Decode(name string, r io.Reader) (*Animation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if strings.EqualFold(path.Ext(name), ".gif") {
		return decodeGIF(name, data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode %s: empty image", name)
	}
	return &Animation{
		Frames: []Frame{{Image: fitTexture(toNRGBA(img))}},
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// decodeGIF composites every frame onto the logical screen, honouring the
// disposal methods, so each frame is a complete picture.
func decodeGIF(name string, data []byte) (*Animation, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode %s: no frames", name)
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, fr := range g.Image {
			screen = screen.Union(fr.Bounds())
		}
		screen = image.Rect(0, 0, screen.Max.X, screen.Max.Y)
	}

	canvas := image.NewNRGBA(screen)
	anim := &Animation{Width: screen.Dx(), Height: screen.Dy()}
	for i, fr := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		xdraw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, xdraw.Over)

		delay := defaultGIFDelay
		if i < len(g.Delay) && g.Delay[i] > 1 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		anim.Frames = append(anim.Frames, Frame{Image: fitTexture(cloneNRGBA(canvas)), Delay: delay})
		anim.total += delay

		switch disposal {
		case gif.DisposalBackground:
			xdraw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return anim, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == b.Dx()*4 {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// fitTexture scales img down so neither side exceeds MaxTextureSide.
func fitTexture(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= MaxTextureSide && h <= MaxTextureSide {
		return img
	}
	scale := float64(MaxTextureSide) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
