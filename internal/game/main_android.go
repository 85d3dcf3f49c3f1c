//go:build android

package game

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"path"
	"time"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/asset"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"

	"cruise/internal/assets"
	"cruise/internal/drive"
	"cruise/internal/hudtext"
	"cruise/internal/logging"
	"cruise/internal/softcanvas"
)

// mobileHost renders frames on the CPU and blits them as one texture;
// GLES 2 has no room for the desktop shader set.
type mobileHost struct {
	log     logging.Logger
	cycle   float64
	start   time.Time
	state   *drive.FrameState
	bus     *drive.EventBus
	queue   drive.InputQueue
	control drive.AudioControl
	sound   *Sound
	loader  *assets.Loader
	canvas  *softcanvas.Canvas

	pictures map[string]*softcanvas.Picture

	// touch state: one finger at a time may hold the accelerator
	accelTouch touch.Sequence
	accelDown  bool

	// GL blit resources
	prog    gl.Program
	tex     gl.Texture
	vbo     gl.Buffer
	aPos    gl.Attrib
	aUV     gl.Attrib
	uTex    gl.Uniform
	texW    int
	texH    int
	glReady bool
}

func newMobileHost(opts drive.Options, log logging.Logger) *mobileHost {
	h := &mobileHost{
		log:      log,
		cycle:    opts.CycleSeconds(),
		start:    time.Now(),
		state:    drive.NewFrameState(opts.Seed),
		bus:      drive.NewEventBus(),
		pictures: make(map[string]*softcanvas.Picture),
	}
	h.state.Muted = opts.Muted
	h.state.Observe(h.bus)
	h.bus.Subscribe(drive.EventAudioError, func(e drive.Event) {
		log.Errorf("audio", "%s: %v", e.Name, e.Err)
	})
	h.bus.Subscribe(drive.EventAssetFailed, func(e drive.Event) {
		log.Errorf("assets", "%s unavailable, drawing placeholder: %v", e.Name, e.Err)
	})
	h.bus.Subscribe(drive.EventAssetLoaded, func(e drive.Event) {
		if e.Name == drive.RoadAsset {
			w, ht := h.pictures[e.Name].Size()
			h.state.SetRoadSize(w, ht)
		}
	})

	fsys := assetFS{}
	if sound, err := InitSound(fsys, opts.Muted, log); err != nil {
		log.Errorf("audio", "init failed (continuing without sound): %v", err)
	} else {
		h.sound = sound
		h.control = sound
	}

	h.canvas = softcanvas.New(hudtext.NewCache(hudtext.NewFace(drive.HUDFontSize, log), textCacheLimit))
	h.loader = assets.NewLoader(fsys, log)
	for _, name := range []string{drive.RoadAsset, drive.CarAsset, drive.BackgroundAsset} {
		h.loader.Load(name)
	}
	return h
}

func (h *mobileHost) loopSeconds() float64 { return time.Since(h.start).Seconds() }

// handleTouch maps fingers to commands: the right half of the screen is the
// accelerator, the left half the brake, and the mute button toggles music.
func (h *mobileHost) handleTouch(e touch.Event) {
	x, y := float64(e.X), float64(e.Y)
	switch e.Type {
	case touch.TypeBegin:
		h.queue.Push(drive.Command{Kind: drive.CmdInteract})
		if drive.MuteButtonRect(h.state.Viewport).Contains(x, y) {
			h.queue.Push(drive.Command{Kind: drive.CmdClick, X: x, Y: y})
			return
		}
		if x >= float64(h.state.Viewport.W)/2 {
			if !h.accelDown {
				h.accelTouch = e.Sequence
				h.accelDown = true
			}
			h.queue.Push(drive.Command{Kind: drive.CmdAccelerate})
		} else {
			h.queue.Push(drive.Command{Kind: drive.CmdDecelerate})
		}
	case touch.TypeEnd:
		if h.accelDown && e.Sequence == h.accelTouch {
			h.accelDown = false
			h.queue.Push(drive.Command{Kind: drive.CmdReleaseAccelerate})
		}
	}
}

func (h *mobileHost) step() {
	drive.ApplyCommands(h.state, h.queue.Drain(), h.control, h.bus)
	for _, res := range h.loader.Poll() {
		if res.Err != nil {
			h.bus.Emit(drive.Event{Type: drive.EventAssetFailed, Name: res.Name, Err: res.Err})
			continue
		}
		h.pictures[res.Name] = softcanvas.NewPicture(res.Anim, h.loopSeconds())
		h.bus.Emit(drive.Event{Type: drive.EventAssetLoaded, Name: res.Name})
	}
	if h.sound != nil {
		h.sound.PollFailures(h.bus)
	}
	h.state.Advance()
}

func (h *mobileHost) render() {
	vp := h.state.Viewport
	h.canvas.Begin(vp.W, vp.H, h.loopSeconds())

	var imgs drive.Images
	if p, ok := h.pictures[drive.RoadAsset]; ok {
		imgs.Road = p
	}
	if p, ok := h.pictures[drive.CarAsset]; ok {
		imgs.Car = p
	}
	if p, ok := h.pictures[drive.BackgroundAsset]; ok {
		imgs.Background = p
	}
	drive.ComposeFrame(h.canvas, h.state, imgs, wallSeconds(), h.cycle)
}

func f32bytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func compileShaderES(glctx gl.Context, kind gl.Enum, src string) (gl.Shader, error) {
	sh := glctx.CreateShader(kind)
	glctx.ShaderSource(sh, src)
	glctx.CompileShader(sh)
	if glctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(sh)
		glctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("shader compile failed: %s", log)
	}
	return sh, nil
}

func linkProgramES(glctx gl.Context, vertSrc, fragSrc string) (gl.Program, error) {
	vs, err := compileShaderES(glctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := compileShaderES(glctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		glctx.DeleteShader(vs)
		return gl.Program{}, err
	}
	prog := glctx.CreateProgram()
	glctx.AttachShader(prog, vs)
	glctx.AttachShader(prog, fs)
	glctx.LinkProgram(prog)
	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)
	if glctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(prog)
		glctx.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("program link failed: %s", log)
	}
	return prog, nil
}

const blitVertSrc = `
attribute vec2 aPos;
attribute vec2 aUV;
varying vec2 vUV;
void main() {
  vUV = aUV;
  gl_Position = vec4(aPos, 0.0, 1.0);
}`

const blitFragSrc = `
precision mediump float;
varying vec2 vUV;
uniform sampler2D uTex;
void main() {
  gl_FragColor = texture2D(uTex, vUV);
}`

func (h *mobileHost) initGL(glctx gl.Context) error {
	if h.glReady {
		return nil
	}
	prog, err := linkProgramES(glctx, blitVertSrc, blitFragSrc)
	if err != nil {
		return err
	}

	verts := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}
	vbo := glctx.CreateBuffer()
	glctx.BindBuffer(gl.ARRAY_BUFFER, vbo)
	glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(verts), gl.STATIC_DRAW)

	tex := glctx.CreateTexture()
	glctx.ActiveTexture(gl.TEXTURE0)
	glctx.BindTexture(gl.TEXTURE_2D, tex)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	glctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	h.prog = prog
	h.tex = tex
	h.vbo = vbo
	h.texW, h.texH = 0, 0
	h.aPos = glctx.GetAttribLocation(prog, "aPos")
	h.aUV = glctx.GetAttribLocation(prog, "aUV")
	h.uTex = glctx.GetUniformLocation(prog, "uTex")
	h.glReady = true
	return nil
}

func (h *mobileHost) destroyGL(glctx gl.Context) {
	if !h.glReady {
		return
	}
	glctx.DeleteBuffer(h.vbo)
	glctx.DeleteTexture(h.tex)
	glctx.DeleteProgram(h.prog)
	h.glReady = false
}

// blit uploads the software frame and stretches it over the surface.
func (h *mobileHost) blit(glctx gl.Context) {
	img := h.canvas.Image()
	w, ht := img.Bounds().Dx(), img.Bounds().Dy()
	if !h.glReady || w <= 0 || ht <= 0 {
		return
	}
	glctx.Viewport(0, 0, w, ht)
	glctx.ClearColor(0, 0, 0, 1)
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	glctx.ActiveTexture(gl.TEXTURE0)
	glctx.BindTexture(gl.TEXTURE_2D, h.tex)
	if w != h.texW || ht != h.texH {
		glctx.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA), w, ht, gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
		h.texW, h.texH = w, ht
	} else {
		glctx.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, ht, gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	}

	glctx.UseProgram(h.prog)
	glctx.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	glctx.EnableVertexAttribArray(h.aPos)
	glctx.EnableVertexAttribArray(h.aUV)
	glctx.VertexAttribPointer(h.aPos, 2, gl.FLOAT, false, 16, 0)
	glctx.VertexAttribPointer(h.aUV, 2, gl.FLOAT, false, 16, 8)
	glctx.Uniform1i(h.uTex, 0)
	glctx.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// RunAndroid runs the animation inside the x/mobile app loop. Assets are
// read from the APK's assets directory.
func RunAndroid(opts drive.Options, log logging.Logger) {
	if log == nil {
		log = logging.NoopLogger{}
	}
	host := newMobileHost(opts, log)

	app.Main(func(a app.App) {
		var glctx gl.Context

		// Each frame requests the next; resizes reuse a queued frame.
		var paints drive.PaintRequests
		requestPaint := func() {
			if paints.Request() {
				a.Send(paint.Event{})
			}
		}

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					ctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					glctx = ctx
					if err := host.initGL(glctx); err != nil {
						panic(err)
					}
					requestPaint()
				case lifecycle.CrossOff:
					if glctx != nil {
						host.destroyGL(glctx)
						glctx = nil
					}
				}
				if e.To == lifecycle.StageDead {
					if host.sound != nil {
						host.sound.Close()
					}
					return
				}

			case size.Event:
				host.state.Resize(e.WidthPx, e.HeightPx)
				if glctx != nil {
					requestPaint()
				}

			case touch.Event:
				host.handleTouch(e)

			case paint.Event:
				if !e.External {
					paints.Delivered()
				}
				if glctx == nil || host.state.Viewport.W <= 0 || host.state.Viewport.H <= 0 {
					continue
				}
				host.step()
				host.render()
				host.blit(glctx)
				a.Publish()
				requestPaint()
			}
		}
	})
}

// assetFS serves files packaged in the APK through io/fs, so the loaders
// work the same on both hosts.
type assetFS struct{}

func (assetFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := asset.Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return assetFile{File: f, name: path.Base(name)}, nil
}

type assetFile struct {
	asset.File
	name string
}

func (f assetFile) Stat() (fs.FileInfo, error) { return assetInfo{name: f.name}, nil }

type assetInfo struct{ name string }

func (i assetInfo) Name() string       { return i.name }
func (i assetInfo) Size() int64        { return -1 }
func (i assetInfo) Mode() fs.FileMode  { return 0o444 }
func (i assetInfo) ModTime() time.Time { return time.Time{} }
func (i assetInfo) IsDir() bool        { return false }
func (i assetInfo) Sys() any           { return nil }
