package drive

import "fmt"

type CommandKind int

const (
	CmdAccelerate CommandKind = iota // press and key repeat
	CmdReleaseAccelerate
	CmdDecelerate // press and key repeat
	CmdToggleMute
	CmdInteract // any key or button; unlocks ambient audio once
	CmdClick    // pointer press at X, Y in framebuffer pixels
)

type Command struct {
	Kind CommandKind
	X, Y float64
}

// InputQueue buffers commands from host callbacks until the next frame
// drains them. Callbacks and the loop share one thread.
type InputQueue struct {
	cmds []Command
}

func (q *InputQueue) Push(c Command) { q.cmds = append(q.cmds, c) }

func (q *InputQueue) Len() int { return len(q.cmds) }

// Drain returns the queued commands in arrival order and empties the queue.
// The returned slice is valid until the next Push.
func (q *InputQueue) Drain() []Command {
	out := q.cmds
	q.cmds = q.cmds[:0]
	return out
}

// AudioControl is the slice of the audio system that input drives.
type AudioControl interface {
	StartAmbient() error
	StartCue()
	StopCue()
	SetMuted(muted bool)
}

// ApplyCommands folds one frame's worth of input into the state.
// audio may be nil when no device is available.
func ApplyCommands(s *FrameState, cmds []Command, audio AudioControl, bus *EventBus) {
	for _, c := range cmds {
		switch c.Kind {
		case CmdInteract:
			if s.AmbientStarted {
				continue
			}
			s.AmbientStarted = true
			if audio == nil {
				continue
			}
			if err := audio.StartAmbient(); err != nil {
				bus.Emit(Event{
					Type: EventAudioError,
					Name: AmbientAsset,
					Msg:  fmt.Sprintf("Audio could not be played: %v", err),
					Err:  err,
				})
			} else {
				bus.Emit(Event{Type: EventAudioStarted, Name: AmbientAsset})
			}

		case CmdAccelerate:
			if s.Accelerate() && audio != nil {
				audio.StartCue()
			}

		case CmdReleaseAccelerate:
			s.ReleaseAccelerate()
			if audio != nil {
				audio.StopCue()
			}

		case CmdDecelerate:
			s.Decelerate()

		case CmdToggleMute:
			s.toggleMute(audio)

		case CmdClick:
			if MuteButtonRect(s.Viewport).Contains(c.X, c.Y) {
				s.toggleMute(audio)
			}
		}
	}
}

func (s *FrameState) toggleMute(audio AudioControl) {
	s.Muted = !s.Muted
	if audio != nil {
		audio.SetMuted(s.Muted)
	}
}
