package drive

import "testing"

func TestEventBusDispatchesByType(t *testing.T) {
	bus := NewEventBus()
	var loaded []string
	failed := 0
	bus.Subscribe(EventAssetLoaded, func(e Event) { loaded = append(loaded, e.Name) })
	bus.Subscribe(EventAssetLoaded, func(e Event) { loaded = append(loaded, e.Name+"!") })
	bus.Subscribe(EventAssetFailed, func(Event) { failed++ })

	bus.Emit(Event{Type: EventAssetLoaded, Name: RoadAsset})
	bus.Emit(Event{Type: EventAudioError})

	if len(loaded) != 2 || loaded[0] != RoadAsset || loaded[1] != RoadAsset+"!" {
		t.Errorf("loaded = %v", loaded)
	}
	if failed != 0 {
		t.Errorf("failed handler ran %d times", failed)
	}
}
