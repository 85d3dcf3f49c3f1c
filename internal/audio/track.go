package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Track is one decoded sound attached to a Mixer. It starts paused.
// All methods are safe to call from the loop while the device reads.
type Track struct {
	Name string

	mu     *sync.Mutex // the owning mixer's lock
	source beep.StreamSeeker
	ctrl   *beep.Ctrl
	vol    *effects.Volume
	tail   *holdStreamer

	volume float64
	muted  bool
}

func newTrack(name string, mu *sync.Mutex, source beep.StreamSeeker, format beep.Format, loop bool, volume float64) *Track {
	var s beep.Streamer = source
	if loop {
		s = beep.Loop(-1, source)
	}
	if format.SampleRate != SampleRate {
		s = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}
	t := &Track{
		Name:   name,
		mu:     mu,
		source: source,
		ctrl:   ctrl,
		vol:    vol,
		tail:   &holdStreamer{s: vol},
	}
	t.setVolumeLocked(volume)
	return t
}

func (t *Track) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.Paused = false
	t.tail.done = false
}

func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.Paused = true
}

// Rewind seeks back to the first sample without changing the paused state.
func (t *Track) Rewind() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tail.done = false
	return t.source.Seek(0)
}

// Playing reports whether the track is unpaused and has samples left.
func (t *Track) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.ctrl.Paused && !t.tail.done
}

// SetVolume sets a linear gain in [0,1].
func (t *Track) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setVolumeLocked(v)
}

func (t *Track) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

func (t *Track) SetMuted(muted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted = muted
	t.vol.Silent = t.muted || t.volume <= 0
}

func (t *Track) Muted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.muted
}

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func (t *Track) setVolumeLocked(v float64) {
	if v > 1 {
		v = 1
	}
	if v <= 0 {
		t.volume = 0
		t.vol.Volume = 0
		t.vol.Silent = true
		return
	}
	t.volume = v
	t.vol.Volume = math.Log2(v)
	t.vol.Silent = t.muted
}

// holdStreamer pads with silence once its source runs dry and never reports
// the end, so the mixer keeps a finished cue around for the next rewind.
type holdStreamer struct {
	s    beep.Streamer
	done bool
}

func (h *holdStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	if !h.done {
		var ok bool
		n, ok = h.s.Stream(samples)
		if !ok || n < len(samples) {
			h.done = true
		}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (h *holdStreamer) Err() error { return h.s.Err() }
