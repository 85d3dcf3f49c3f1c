//go:build !android

package game

import (
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"cruise/internal/assets"
)

// Texture is a decoded picture resident on the GPU, one texture per
// animation frame. It satisfies drive.Image.
type Texture struct {
	anim  *assets.Animation
	ids   []uint32
	start float64 // loop time of upload; animation plays from here
}

// NewTexture uploads every frame of anim. Call on the GL thread.
func NewTexture(anim *assets.Animation, now float64) *Texture {
	t := &Texture{anim: anim, start: now}
	for _, f := range anim.Frames {
		t.ids = append(t.ids, uploadNRGBA(f.Image))
	}
	return t
}

func (t *Texture) Loaded() bool { return t != nil && len(t.ids) > 0 }

// Size is the natural size of the source image, not the uploaded one.
func (t *Texture) Size() (int, int) { return t.anim.Width, t.anim.Height }

// Frame returns the texture to draw at loop time now.
func (t *Texture) Frame(now float64) uint32 {
	elapsed := time.Duration((now - t.start) * float64(time.Second))
	return t.ids[t.anim.FrameIndex(elapsed)]
}

func (t *Texture) Delete() {
	if len(t.ids) > 0 {
		gl.DeleteTextures(int32(len(t.ids)), &t.ids[0])
	}
	t.ids = nil
}

func uploadNRGBA(img *image.NRGBA) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	return tex
}
