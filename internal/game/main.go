//go:build !android

package game

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cruise/internal/assets"
	"cruise/internal/drive"
	"cruise/internal/hudtext"
	"cruise/internal/logging"
)

// RunDesktop opens the window and runs the animation until it is closed.
func RunDesktop(opts drive.Options, log logging.Logger) error {
	runtime.LockOSThread()
	if log == nil {
		log = logging.NoopLogger{}
	}

	window, err := initWindow(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Infof("game", "OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)

	fsys := os.DirFS(opts.AssetDir)

	state := drive.NewFrameState(opts.Seed)
	state.Muted = opts.Muted
	bus := drive.NewEventBus()
	state.Observe(bus)
	bus.Subscribe(drive.EventAudioError, func(e drive.Event) {
		log.Errorf("audio", "%s: %v", e.Name, e.Err)
	})
	bus.Subscribe(drive.EventAssetFailed, func(e drive.Event) {
		log.Errorf("assets", "%s unavailable, drawing placeholder: %v", e.Name, e.Err)
	})

	// Audio failure leaves the animation running silently.
	var control drive.AudioControl
	sound, err := InitSound(fsys, opts.Muted, log)
	if err != nil {
		log.Errorf("audio", "init failed (continuing without sound): %v", err)
	} else {
		defer sound.Close()
		control = sound
	}

	rend, err := NewRenderer(hudtext.NewCache(hudtext.NewFace(drive.HUDFontSize, log), textCacheLimit))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	loader := assets.NewLoader(fsys, log)
	for _, name := range []string{drive.RoadAsset, drive.CarAsset, drive.BackgroundAsset} {
		loader.Load(name)
	}
	textures := make(map[string]*Texture)
	defer func() {
		for _, t := range textures {
			t.Delete()
		}
	}()

	cycle := opts.CycleSeconds()
	draw := func() {
		fbW, fbH := window.GetFramebufferSize()
		now := wallSeconds()
		rend.BeginFrame(fbW, fbH, glfw.GetTime())
		drive.ComposeFrame(rend, state, sceneImages(textures), now, cycle)
		window.SwapBuffers()
	}

	// The framebuffer callback runs inside PollEvents; redrawing there keeps
	// the picture live while the window is being dragged larger.
	input := NewInput(window, func(w, h int) {
		state.Resize(w, h)
		draw()
	})
	fbW, fbH := window.GetFramebufferSize()
	state.Resize(fbW, fbH)

	bus.Subscribe(drive.EventAssetLoaded, func(e drive.Event) {
		if e.Name == drive.RoadAsset {
			w, h := textures[e.Name].Size()
			state.SetRoadSize(w, h)
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()

		drive.ApplyCommands(state, input.Drain(), control, bus)

		for _, res := range loader.Poll() {
			if res.Err != nil {
				bus.Emit(drive.Event{Type: drive.EventAssetFailed, Name: res.Name, Err: res.Err})
				continue
			}
			textures[res.Name] = NewTexture(res.Anim, glfw.GetTime())
			bus.Emit(drive.Event{Type: drive.EventAssetLoaded, Name: res.Name})
		}
		if sound != nil {
			sound.PollFailures(bus)
		}

		state.Advance()
		draw()
	}
	return nil
}

func sceneImages(textures map[string]*Texture) drive.Images {
	var imgs drive.Images
	if t, ok := textures[drive.RoadAsset]; ok {
		imgs.Road = t
	}
	if t, ok := textures[drive.CarAsset]; ok {
		imgs.Car = t
	}
	if t, ok := textures[drive.BackgroundAsset]; ok {
		imgs.Background = t
	}
	return imgs
}
