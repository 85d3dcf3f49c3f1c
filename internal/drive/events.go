package drive

type EventType int

const (
	EventAssetLoaded EventType = iota
	EventAssetFailed
	EventAudioStarted
	EventAudioError
)

type Event struct {
	Type EventType
	Name string // asset name or audio file
	Msg  string // user-facing text for audio errors
	Err  error
}

type EventHandler func(Event)

// EventBus is a synchronous observer list. Handlers run on the emitting
// goroutine, which is always the loop's thread.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

// Observe wires the HUD audio status line to audio events: an error shows
// its message, a successful start hides it.
func (s *FrameState) Observe(bus *EventBus) {
	bus.Subscribe(EventAudioError, func(e Event) {
		s.AudioStatus = e.Msg
	})
	bus.Subscribe(EventAudioStarted, func(Event) {
		s.AudioStatus = ""
	})
}
