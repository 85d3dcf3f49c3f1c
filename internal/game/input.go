//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"cruise/internal/drive"
)

// Input turns GLFW callbacks into drive commands. Callbacks fire inside
// PollEvents on the loop thread, so the queue needs no locking.
type Input struct {
	queue    drive.InputQueue
	onResize func(w, h int)
}

func NewInput(window *glfw.Window, onResize func(w, h int)) *Input {
	in := &Input{onResize: onResize}
	window.SetKeyCallback(in.key)
	window.SetMouseButtonCallback(in.mouseButton)
	window.SetFramebufferSizeCallback(in.framebufferSize)
	return in
}

// Drain returns this frame's commands in arrival order.
func (in *Input) Drain() []drive.Command { return in.queue.Drain() }

func (in *Input) key(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		in.queue.Push(drive.Command{Kind: drive.CmdInteract})
	}

	switch key {
	case glfw.KeyEscape:
		if action == glfw.Press {
			w.SetShouldClose(true)
		}
	case glfw.KeyRight:
		// Repeats arrive as extra accelerate commands; the state ignores
		// them until the key is released.
		if action == glfw.Release {
			in.queue.Push(drive.Command{Kind: drive.CmdReleaseAccelerate})
		} else {
			in.queue.Push(drive.Command{Kind: drive.CmdAccelerate})
		}
	case glfw.KeyLeft:
		if action != glfw.Release {
			in.queue.Push(drive.Command{Kind: drive.CmdDecelerate})
		}
	case glfw.KeyM:
		if action == glfw.Press {
			in.queue.Push(drive.Command{Kind: drive.CmdToggleMute})
		}
	}
}

func (in *Input) mouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	in.queue.Push(drive.Command{Kind: drive.CmdInteract})
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := cursorFramebufferPos(w)
	in.queue.Push(drive.Command{Kind: drive.CmdClick, X: x, Y: y})
}

func (in *Input) framebufferSize(w *glfw.Window, width, height int) {
	if in.onResize != nil {
		in.onResize(width, height)
	}
}

// cursorFramebufferPos converts the cursor from window units to
// framebuffer pixels, which differ on HiDPI displays.
func cursorFramebufferPos(window *glfw.Window) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	fbW, fbH := window.GetFramebufferSize()
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}
