//go:build !android

package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"cruise/internal/drive"
	"cruise/internal/hudtext"
)

const (
	quadModeFlat     = 0
	quadModeTexture  = 1
	quadModeGradient = 2

	// bodyExtent is the half-size of the quad the celestial shader fills;
	// it covers the disc plus its halo.
	bodyExtent = 110.0
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws the scene in screen pixels. It implements drive.Canvas.
type Renderer struct {
	// Quad program: flat, textured and gradient rectangles.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32

	qURect       int32
	qUResolution int32
	qUMode       int32
	qUColor      int32
	qUColor2     int32
	qUTex        int32

	// Celestial program, drawn with the quad VAO.
	bodyProg     uint32
	bURect       int32
	bUResolution int32
	bUCenter     int32
	bUKind       int32

	// Star point sprites: x, y, radius, alpha per vertex.
	starProg     uint32
	starVAO      uint32
	starVBO      uint32
	sUResolution int32
	starBuf      []float32

	text    *hudtext.Cache
	textTex map[*hudtext.Label]uint32

	fbW, fbH int
	now      float64
}

func NewRenderer(text *hudtext.Cache) (*Renderer, error) {
	quadProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	bodyProg, err := linkProgram(quadVertSrc, bodyFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		return nil, fmt.Errorf("celestial program: %w", err)
	}
	starProg, err := linkProgram(starVertSrc, starFragSrc)
	if err != nil {
		gl.DeleteProgram(quadProg)
		gl.DeleteProgram(bodyProg)
		return nil, fmt.Errorf("star program: %w", err)
	}

	r := &Renderer{
		quadProg: quadProg,
		bodyProg: bodyProg,
		starProg: starProg,
		text:     text,
		textTex:  make(map[*hudtext.Label]uint32),
	}
	text.OnEvict = r.releaseLabel

	// Unit quad (6 vertices, 2 triangles).
	var qVAO, qVBO uint32
	gl.GenVertexArrays(1, &qVAO)
	gl.GenBuffers(1, &qVBO)
	gl.BindVertexArray(qVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, qVBO)
	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = qVAO
	r.quadVBO = qVBO

	gl.UseProgram(quadProg)
	r.qURect = gl.GetUniformLocation(quadProg, gl.Str("uRect\x00"))
	r.qUResolution = gl.GetUniformLocation(quadProg, gl.Str("uResolution\x00"))
	r.qUMode = gl.GetUniformLocation(quadProg, gl.Str("uMode\x00"))
	r.qUColor = gl.GetUniformLocation(quadProg, gl.Str("uColor\x00"))
	r.qUColor2 = gl.GetUniformLocation(quadProg, gl.Str("uColor2\x00"))
	r.qUTex = gl.GetUniformLocation(quadProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.qUTex, 0)

	gl.UseProgram(bodyProg)
	r.bURect = gl.GetUniformLocation(bodyProg, gl.Str("uRect\x00"))
	r.bUResolution = gl.GetUniformLocation(bodyProg, gl.Str("uResolution\x00"))
	r.bUCenter = gl.GetUniformLocation(bodyProg, gl.Str("uCenter\x00"))
	r.bUKind = gl.GetUniformLocation(bodyProg, gl.Str("uKind\x00"))

	// Star VBO: streamed every night frame.
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)
	stride := int32(4 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, drive.StarCount*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aRadius
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aAlpha
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, stride, glOffset(3*4))
	r.starVAO = sVAO
	r.starVBO = sVBO

	gl.UseProgram(starProg)
	r.sUResolution = gl.GetUniformLocation(starProg, gl.Str("uResolution\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	r.text.Clear()
	for _, id := range []uint32{r.quadVBO, r.starVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.starVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.bodyProg, r.starProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// BeginFrame clears the framebuffer and records the frame time used to
// pick animation frames.
func (r *Renderer) BeginFrame(fbW, fbH int, now float64) {
	r.fbW, r.fbH = fbW, fbH
	r.now = now
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (r *Renderer) useQuad(x, y, w, h float64, mode int32) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.qUResolution, float32(r.fbW), float32(r.fbH))
	gl.Uniform4f(r.qURect, float32(x), float32(y), float32(w), float32(h))
	gl.Uniform1i(r.qUMode, mode)
}

func setColor(loc int32, c drive.RGB, a float32) {
	red, green, blue := c.Floats()
	gl.Uniform4f(loc, red, green, blue, a)
}

func (r *Renderer) FillGradient(x, y, w, h float64, sky drive.Sky) {
	r.useQuad(x, y, w, h, quadModeGradient)
	setColor(r.qUColor, sky.Top, 1)
	setColor(r.qUColor2, sky.Bottom, 1)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) FillRect(x, y, w, h float64, col drive.RGB) {
	r.useQuad(x, y, w, h, quadModeFlat)
	setColor(r.qUColor, col, 1)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) DrawImage(img drive.Image, x, y, w, h float64) {
	tex, ok := img.(*Texture)
	if !ok || !tex.Loaded() {
		return
	}
	r.drawTexture(tex.Frame(r.now), x, y, w, h)
}

func (r *Renderer) drawTexture(id uint32, x, y, w, h float64) {
	r.useQuad(x, y, w, h, quadModeTexture)
	gl.Uniform4f(r.qUColor, 1, 1, 1, 1)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) DrawCelestial(c drive.Celestial) {
	gl.UseProgram(r.bodyProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.bUResolution, float32(r.fbW), float32(r.fbH))
	gl.Uniform4f(r.bURect,
		float32(c.X-bodyExtent), float32(c.Y-bodyExtent),
		2*bodyExtent, 2*bodyExtent)
	gl.Uniform2f(r.bUCenter, float32(c.X), float32(c.Y))
	kind := int32(0)
	if c.Kind == drive.BodyMoon {
		kind = 1
	}
	gl.Uniform1i(r.bUKind, kind)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) DrawStars(stars []drive.StarSprite) {
	if len(stars) == 0 {
		return
	}
	r.starBuf = r.starBuf[:0]
	for _, s := range stars {
		r.starBuf = append(r.starBuf, float32(s.X), float32(s.Y), float32(s.R), float32(s.Alpha))
	}
	gl.UseProgram(r.starProg)
	gl.BindVertexArray(r.starVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.starVBO)
	gl.Uniform2f(r.sUResolution, float32(r.fbW), float32(r.fbH))
	gl.BufferData(gl.ARRAY_BUFFER, len(r.starBuf)*4, gl.Ptr(r.starBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(stars)))
}

// DrawText draws an outlined string with its baseline at y.
func (r *Renderer) DrawText(text string, x, y float64, style drive.TextStyle) {
	if text == "" {
		return
	}
	label, fresh := r.text.Get(text, style)
	id, ok := r.textTex[label]
	if fresh || !ok {
		id = uploadNRGBA(label.Image)
		r.textTex[label] = id
	}
	b := label.Image.Bounds()
	r.drawTexture(id,
		x-float64(label.OriginX), y-float64(label.Baseline),
		float64(b.Dx()), float64(b.Dy()))
}

func (r *Renderer) releaseLabel(l *hudtext.Label) {
	if id, ok := r.textTex[l]; ok {
		gl.DeleteTextures(1, &id)
		delete(r.textTex, l)
	}
}
